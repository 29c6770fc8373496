package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/cpg-decision-api/internal/config"
)

// ChatMessage é uma mensagem no formato de chat-completions.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Client fala com qualquer endpoint compatível com o protocolo de
// chat-completions da OpenAI (OpenAI, Databricks, vLLM etc.).
type Client interface {
	ChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente de chat-completions.
func NewClient(cfg *config.Config) *OpenAIClient {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		config: cfg,
	}
}

// ChatCompletion envia o histórico de mensagens e devolve o texto da primeira
// escolha retornada pelo modelo.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	payload := chatRequest{
		Model:       c.config.LLM.Model,
		Messages:    messages,
		Temperature: c.config.LLM.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar a requisição de chat")
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.LLM.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "erro ao montar a requisição de chat")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.LLM.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "erro ao chamar o provedor de LLM")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "erro ao ler a resposta do provedor de LLM")
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provedor de LLM retornou status %d: %s", resp.StatusCode, string(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", errors.Wrap(err, "erro ao decodificar a resposta do provedor de LLM")
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("provedor de LLM retornou erro: %s", parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("provedor de LLM não retornou escolhas")
	}

	return parsed.Choices[0].Message.Content, nil
}
