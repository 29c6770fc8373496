package advising

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm"
)

// Quantidade máxima de mensagens retidas por conversa.
// Ao exceder, as mensagens mais antigas são descartadas.
const maxMessagesPerConversation = 20

// Memory guarda o histórico de mensagens por conversa, em memória.
// É estado do orquestrador, não do núcleo analítico: as ferramentas
// continuam sem estado entre chamadas.
type Memory struct {
	mu            sync.Mutex
	conversations map[string][]llm.Message
}

// NewMemory cria a memória de conversas vazia
func NewMemory() *Memory {
	return &Memory{
		conversations: make(map[string][]llm.Message),
	}
}

// NewConversationID gera um identificador novo de conversa
func (m *Memory) NewConversationID() string {
	return uuid.New().String()
}

// History devolve uma cópia do histórico da conversa
func (m *Memory) History(conversationID string) []llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.conversations[conversationID]
	copied := make([]llm.Message, len(history))
	copy(copied, history)

	return copied
}

// Append adiciona uma mensagem ao histórico da conversa, descartando as mais
// antigas quando o limite é excedido.
func (m *Memory) Append(conversationID string, message llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := append(m.conversations[conversationID], message)
	if len(history) > maxMessagesPerConversation {
		history = history[len(history)-maxMessagesPerConversation:]
	}

	m.conversations[conversationID] = history
}
