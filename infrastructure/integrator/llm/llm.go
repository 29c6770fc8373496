package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm/geminiclient"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm/openaiclient"
	"github.com/vfg2006/cpg-decision-api/internal/config"
)

// ErrProvider indica falha na chamada ao provedor de linguagem.
// Chamadores distinguem essa falha dos erros analíticos via errors.Is.
var ErrProvider = errors.New("llm provider failure")

// Papéis das mensagens trocadas com o modelo
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message é uma mensagem do histórico de conversa enviado ao modelo.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer é o contrato consumido pelo orquestrador: recebe a instrução de
// sistema e o histórico de mensagens e devolve a resposta do modelo em texto.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// NewFromConfig cria o cliente do provedor configurado.
// Provedores não suportados falham na subida do processo, não na primeira chamada.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Completer, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return &openAICompleter{client: openaiclient.NewClient(cfg)}, nil
	case "gemini":
		client, err := geminiclient.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &geminiCompleter{client: client}, nil
	}

	return nil, fmt.Errorf("provedor de LLM não suportado: %q", cfg.LLM.Provider)
}

// openAICompleter adapta o cliente de chat-completions ao contrato Completer
type openAICompleter struct {
	client openaiclient.Client
}

func (c *openAICompleter) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	chat := make([]openaiclient.ChatMessage, 0, len(messages)+1)
	chat = append(chat, openaiclient.ChatMessage{Role: RoleSystem, Content: system})

	for _, message := range messages {
		chat = append(chat, openaiclient.ChatMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	return c.client.ChatCompletion(ctx, chat)
}

// geminiCompleter adapta o cliente Gemini ao contrato Completer.
// O Gemini recebe a instrução de sistema separada e o histórico achatado
// em um único prompt.
type geminiCompleter struct {
	client *geminiclient.GeminiClient
}

func (c *geminiCompleter) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	var builder strings.Builder

	for _, message := range messages {
		builder.WriteString(strings.ToUpper(message.Role))
		builder.WriteString(": ")
		builder.WriteString(message.Content)
		builder.WriteString("\n\n")
	}

	return c.client.GenerateText(ctx, system, builder.String())
}
