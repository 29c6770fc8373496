package geminiclient

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"github.com/vfg2006/cpg-decision-api/internal/config"
	"google.golang.org/api/option"
)

// GeminiClient encapsula o cliente oficial do Gemini para geração de texto.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewClient cria uma nova instância do cliente Gemini.
func NewClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.LLM.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar o cliente Gemini")
	}

	return &GeminiClient{
		client: client,
		model:  cfg.LLM.Model,
	}, nil
}

// GenerateText envia o prompt montado e devolve o texto concatenado das
// partes da primeira candidata.
func (c *GeminiClient) GenerateText(ctx context.Context, system string, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar conteúdo no Gemini")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("Gemini não retornou candidatas")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}

	return builder.String(), nil
}

// Close libera a conexão com o serviço.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
