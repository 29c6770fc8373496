package advising

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm/mocks"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/tooling"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
	"go.uber.org/mock/gomock"
)

// failingInvoker simula um registro cujas ferramentas sempre falham.
type failingInvoker struct{}

func (f *failingInvoker) Invoke(name domain.ToolName, args map[string]any) (any, error) {
	return nil, domain.NewAnalysisError(domain.ErrEmptyResult, string(name), "sem dados")
}

func (f *failingInvoker) Describe() []tooling.Description {
	return nil
}

// partialInvoker falha apenas nas simulações, preservando a análise de tendência.
type partialInvoker struct {
	registry tooling.Invoker
}

func (p *partialInvoker) Invoke(name domain.ToolName, args map[string]any) (any, error) {
	if name == domain.ToolPromoSimulation {
		return nil, domain.NewAnalysisError(domain.ErrEmptyResult, string(name), "sem dados para o SKU")
	}
	return p.registry.Invoke(name, args)
}

func (p *partialInvoker) Describe() []tooling.Description {
	return p.registry.Describe()
}

func advisingDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	records := make([]domain.SalesRecord, 0, 10)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		records = append(records, domain.SalesRecord{
			Date:      start.AddDate(0, 0, i*7),
			SKUID:     "SKU001",
			StoreID:   "ST01",
			UnitsSold: float64(100 + i),
			Price:     10,
			Revenue:   float64(100+i) * 10,
		})
	}

	data, err := dataset.NewFromRecords(records)
	require.NoError(t, err)

	return data
}

func newTestAdvisor(t *testing.T, completer llm.Completer) (Advisor, *dataset.Dataset) {
	t.Helper()

	data := advisingDataset(t)

	registry := tooling.NewRegistry(
		trending.NewService(data),
		detecting.NewService(data),
		simulating.NewService(data),
	)

	return NewService(registry, completer, data), data
}

func TestService_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	advisor, _ := newTestAdvisor(t, completer)

	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, system string, messages []llm.Message) (string, error) {
			assert.Contains(t, system, "analista sênior")

			require.Len(t, messages, 1)
			assert.Equal(t, llm.RoleUser, messages[0].Role)
			assert.Contains(t, messages[0].Content, "trend_analysis")
			assert.Contains(t, messages[0].Content, "time_series")

			return "As vendas do SKU001 crescem de forma consistente.", nil
		})

	advice, err := advisor.Ask(context.Background(), "What is the sales trend for SKU001?", "")

	require.NoError(t, err)
	assert.NotEmpty(t, advice.ConversationID)
	assert.Equal(t, "As vendas do SKU001 crescem de forma consistente.", advice.Answer)

	require.Len(t, advice.Hints, 1)
	assert.Equal(t, domain.ToolTrendAnalysis, advice.Hints[0].Tool)

	require.Len(t, advice.ToolResults, 1)
	assert.Equal(t, "SKU001", advice.ToolResults[0].Args["sku_id"])
	assert.NotNil(t, advice.ToolResults[0].Result)
	assert.Empty(t, advice.ToolResults[0].Error)
}

func TestService_Ask_PerguntaVazia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	advisor, _ := newTestAdvisor(t, mocks.NewMockCompleter(ctrl))

	advice, err := advisor.Ask(context.Background(), "   ", "")

	require.Error(t, err)
	assert.Nil(t, advice)
	assert.True(t, domain.IsInvalidParameter(err))
}

func TestService_Ask_SemPalavraChave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa no mock: o modelo não deve ser chamado sem dados
	advisor, _ := newTestAdvisor(t, mocks.NewMockCompleter(ctrl))

	advice, err := advisor.Ask(context.Background(), "Tell me a joke", "")

	require.NoError(t, err)
	assert.Empty(t, advice.ToolResults)
	assert.Empty(t, advice.Hints)
	assert.Contains(t, advice.Answer, "Reformule")
}

func TestService_Ask_MemoriaDaConversa(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	advisor, _ := newTestAdvisor(t, completer)

	gomock.InOrder(
		completer.EXPECT().
			Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages []llm.Message) (string, error) {
				assert.Len(t, messages, 1)
				return "primeira resposta", nil
			}),
		completer.EXPECT().
			Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages []llm.Message) (string, error) {
				// Pergunta e resposta anteriores mais o prompt novo
				require.Len(t, messages, 3)
				assert.Equal(t, llm.RoleUser, messages[0].Role)
				assert.Equal(t, "What is the sales trend for SKU001?", messages[0].Content)
				assert.Equal(t, llm.RoleAssistant, messages[1].Role)
				assert.Equal(t, "primeira resposta", messages[1].Content)
				return "segunda resposta", nil
			}),
	)

	first, err := advisor.Ask(context.Background(), "What is the sales trend for SKU001?", "")
	require.NoError(t, err)

	second, err := advisor.Ask(context.Background(), "And the trend for store ST01?", first.ConversationID)
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, "segunda resposta", second.Answer)
}

func TestService_Ask_FerramentaFalhaParcialmente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	data := advisingDataset(t)

	registry := tooling.NewRegistry(
		trending.NewService(data),
		detecting.NewService(data),
		simulating.NewService(data),
	)

	advisor := NewService(&partialInvoker{registry: registry}, completer, data)

	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages []llm.Message) (string, error) {
			// O prompt marca a ferramenta indisponível em vez de omiti-la
			assert.Contains(t, messages[0].Content, "indisponível")
			return "resposta parcial", nil
		})

	advice, err := advisor.Ask(context.Background(), "Trend and promo impact for SKU001", "")

	require.NoError(t, err)
	require.Len(t, advice.ToolResults, 2)
	assert.NotNil(t, advice.ToolResults[0].Result)
	assert.NotEmpty(t, advice.ToolResults[1].Error)
	assert.Equal(t, "resposta parcial", advice.Answer)
}

func TestService_Ask_SimulacaoSemSKUNaPergunta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa no mock: a pergunta não cita SKU algum, a simulação
	// rejeita o parâmetro ausente e nenhuma média global vira narrativa
	advisor, _ := newTestAdvisor(t, mocks.NewMockCompleter(ctrl))

	advice, err := advisor.Ask(context.Background(), "What is the promo impact?", "")

	require.Error(t, err)
	assert.Nil(t, advice)
	assert.Contains(t, err.Error(), "sku_id")
}

func TestService_Ask_TodasAsFerramentasFalham(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa no mock: sem resultado não há narrativa
	data := advisingDataset(t)
	advisor := NewService(&failingInvoker{}, mocks.NewMockCompleter(ctrl), data)

	advice, err := advisor.Ask(context.Background(), "What is the sales trend?", "")

	require.Error(t, err)
	assert.Nil(t, advice)
	assert.Contains(t, err.Error(), "nenhuma ferramenta produziu resultado")
}

func TestService_Ask_ErroDoModelo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := mocks.NewMockCompleter(ctrl)
	advisor, _ := newTestAdvisor(t, completer)

	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("timeout"))

	advice, err := advisor.Ask(context.Background(), "What is the sales trend?", "")

	require.Error(t, err)
	assert.Nil(t, advice)
	assert.ErrorIs(t, err, llm.ErrProvider)
	assert.Contains(t, err.Error(), "narrativa")
}

func TestArgsForTool(t *testing.T) {
	args := map[string]any{"sku_id": "SKU001", "store_id": "ST01"}

	tests := []struct {
		name      string
		tool      domain.ToolName
		wantStore bool
	}{
		{"Tendência mantém a loja", domain.ToolTrendAnalysis, true},
		{"Anomalias mantém a loja", domain.ToolAnomalyDetection, true},
		{"Promoção mantém a loja", domain.ToolPromoSimulation, true},
		{"Mudança de preço descarta a loja", domain.ToolPriceChangeSimulation, false},
		{"Ruptura descarta a loja", domain.ToolSupplyShortageSimulation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := argsForTool(tt.tool, args)

			assert.Equal(t, "SKU001", filtered["sku_id"])

			_, hasStore := filtered["store_id"]
			assert.Equal(t, tt.wantStore, hasStore)

			// O mapa original não é alterado
			assert.Contains(t, args, "store_id")
		})
	}
}

func TestMemory(t *testing.T) {
	memory := NewMemory()

	t.Run("Identificadores de conversa são únicos", func(t *testing.T) {
		first := memory.NewConversationID()
		second := memory.NewConversationID()

		assert.NotEmpty(t, first)
		assert.NotEqual(t, first, second)
	})

	t.Run("Histórico devolve cópia isolada", func(t *testing.T) {
		memory.Append("conv-1", llm.Message{Role: llm.RoleUser, Content: "oi"})

		history := memory.History("conv-1")
		history[0].Content = "alterado"

		assert.Equal(t, "oi", memory.History("conv-1")[0].Content)
	})

	t.Run("Mensagens antigas são descartadas ao exceder o limite", func(t *testing.T) {
		for i := 0; i < maxMessagesPerConversation+5; i++ {
			memory.Append("conv-2", llm.Message{
				Role:    llm.RoleUser,
				Content: strings.Repeat("m", i+1),
			})
		}

		history := memory.History("conv-2")

		require.Len(t, history, maxMessagesPerConversation)
		// A mensagem mais antiga retida é a sexta enviada
		assert.Len(t, history[0].Content, 6)
	})

	t.Run("Conversa desconhecida tem histórico vazio", func(t *testing.T) {
		assert.Empty(t, memory.History("conv-404"))
	})
}
