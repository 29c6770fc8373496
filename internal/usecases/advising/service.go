package advising

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/routing"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/tooling"
	"github.com/vfg2006/cpg-decision-api/pkg/log"
	"github.com/vfg2006/cpg-decision-api/pkg/utils"
)

// systemPrompt define o comportamento do analista que narra os resultados.
// O modelo nunca inventa números: todo valor citado vem dos resultados
// estruturados das ferramentas.
const systemPrompt = `Você é um analista sênior de decisões de CPG (bens de consumo embalados).

Suas responsabilidades:
- Entender claramente a pergunta de negócio
- Basear todo o raciocínio estritamente nas saídas das ferramentas fornecidas
- Declarar explicitamente as premissas usadas
- Gerar recomendações de estratégia concisas e prontas para executivos

Regras:
- NÃO chute nem invente números: use apenas os valores presentes nos resultados
- Mantenha as explicações focadas em negócio, não em técnica
- Sempre conclua com uma recomendação que apoie uma decisão de negócio`

// clarificationAnswer é devolvida quando nenhuma palavra-chave casa com a
// pergunta; o LLM não é chamado sem dados de ferramenta.
const clarificationAnswer = "Não consegui associar a pergunta a nenhuma análise disponível. " +
	"Reformule mencionando tendência, anomalias, promoção, preço ou abastecimento."

// ToolExecution registra a execução de uma ferramenta recomendada pelo roteador.
type ToolExecution struct {
	Tool   domain.ToolName `json:"tool"`
	Args   map[string]any  `json:"args"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Advice é a resposta do orquestrador: a narrativa do modelo mais os
// resultados estruturados que a sustentam.
type Advice struct {
	ConversationID string            `json:"conversation_id"`
	Question       string            `json:"question"`
	Hints          []domain.ToolHint `json:"hints"`
	ToolResults    []ToolExecution   `json:"tool_results"`
	Answer         string            `json:"answer"`
}

// Advisor define a interface do orquestrador de decisões
type Advisor interface {
	Ask(ctx context.Context, question string, conversationID string) (*Advice, error)
}

type Service struct {
	registry  tooling.Invoker
	completer llm.Completer
	memory    *Memory
	data      *dataset.Dataset
}

// NewService cria o orquestrador sobre o registro de ferramentas e o modelo
func NewService(
	registry tooling.Invoker,
	completer llm.Completer,
	data *dataset.Dataset,
) Advisor {
	return &Service{
		registry:  registry,
		completer: completer,
		memory:    NewMemory(),
		data:      data,
	}
}

// Ask roteia a pergunta para as ferramentas recomendadas, executa cada uma
// com parâmetros extraídos da própria pergunta e pede ao modelo a narrativa
// executiva sobre os resultados estruturados.
func (s *Service) Ask(ctx context.Context, question string, conversationID string) (*Advice, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.NewAnalysisError(domain.ErrInvalidParameter, "ask", "pergunta vazia")
	}

	if conversationID == "" {
		conversationID = s.memory.NewConversationID()
	}

	advice := &Advice{
		ConversationID: conversationID,
		Question:       question,
		Hints:          routing.Route(question),
	}

	if len(advice.Hints) == 0 {
		advice.Answer = clarificationAnswer
		return advice, nil
	}

	args := s.argsFromQuestion(question)
	failures := 0

	for _, hint := range advice.Hints {
		toolArgs := argsForTool(hint.Tool, args)

		execution := ToolExecution{
			Tool: hint.Tool,
			Args: toolArgs,
		}

		result, err := s.registry.Invoke(hint.Tool, toolArgs)
		if err != nil {
			execution.Error = err.Error()
			failures++

			log.L.WithError(err).WithFields(log.Fields{
				"tool":     hint.Tool,
				"question": question,
			}).Warn("Ferramenta recomendada falhou")
		} else {
			execution.Result = result
		}

		advice.ToolResults = append(advice.ToolResults, execution)
	}

	// Todas as ferramentas falharam: não há dado para narrar, o erro da
	// primeira execução sobe para o chamador em vez de virar prosa inventada
	if failures == len(advice.ToolResults) {
		return nil, fmt.Errorf("nenhuma ferramenta produziu resultado: %s", advice.ToolResults[0].Error)
	}

	prompt := buildPrompt(question, advice.ToolResults)

	messages := append(s.memory.History(conversationID), llm.Message{
		Role:    llm.RoleUser,
		Content: prompt,
	})

	answer, err := s.completer.Complete(ctx, systemPrompt, messages)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar a narrativa: %w: %w", llm.ErrProvider, err)
	}

	advice.Answer = answer

	s.memory.Append(conversationID, llm.Message{Role: llm.RoleUser, Content: question})
	s.memory.Append(conversationID, llm.Message{Role: llm.RoleAssistant, Content: answer})

	return advice, nil
}

// argsFromQuestion extrai identificadores conhecidos citados na pergunta.
// É o mesmo casamento simples de substring do roteador: sem stemming e sem
// interpretação; um classificador melhor pertence a quem chama.
func (s *Service) argsFromQuestion(question string) map[string]any {
	normalized := strings.ToLower(question)
	summary := s.data.Summary()

	args := map[string]any{}

	for _, sku := range summary.SKUs {
		if strings.Contains(normalized, strings.ToLower(sku)) {
			args["sku_id"] = sku
			break
		}
	}

	for _, store := range summary.Stores {
		if strings.Contains(normalized, strings.ToLower(store)) {
			args["store_id"] = store
			break
		}
	}

	return args
}

// argsForTool restringe os argumentos aos que o contrato da ferramenta aceita.
// As simulações de preço e abastecimento operam por SKU no dataset inteiro e
// não recebem filtro de loja.
func argsForTool(tool domain.ToolName, args map[string]any) map[string]any {
	filtered := make(map[string]any, len(args))
	for key, value := range args {
		filtered[key] = value
	}

	if tool == domain.ToolPriceChangeSimulation || tool == domain.ToolSupplyShortageSimulation {
		delete(filtered, "store_id")
	}

	return filtered
}

// buildPrompt serializa os resultados estruturados junto com a pergunta
func buildPrompt(question string, executions []ToolExecution) string {
	var builder strings.Builder

	builder.WriteString("Pergunta de negócio:\n")
	builder.WriteString(question)
	builder.WriteString("\n\nResultados das ferramentas analíticas:\n")

	for _, execution := range executions {
		if execution.Error != "" {
			fmt.Fprintf(&builder, "\n[%s] indisponível: %s\n", execution.Tool, execution.Error)
			continue
		}

		fmt.Fprintf(&builder, "\n[%s]\n%s\n", execution.Tool, utils.PrettyJson(execution.Result))
	}

	builder.WriteString("\nGere a recomendação executiva baseada exclusivamente nesses resultados.")

	return builder.String()
}
