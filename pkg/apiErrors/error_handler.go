package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_002" // Token inválido
	ErrExpiredToken       = "AUTH_003" // Token expirado

	// Erros de validação (VAL)
	ErrInvalidRequest   = "VAL_001" // Requisição inválida
	ErrInvalidParameter = "VAL_002" // Parâmetro fora do domínio da ferramenta
	ErrMissingParameter = "VAL_003" // Parâmetro obrigatório ausente

	// Erros analíticos (ANA)
	ErrEmptyResult = "ANA_001" // Filtros não deixaram linhas para a estatística

	// Erros do servidor (SRV)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrDatasetLoad    = "SRV_002" // Falha ao carregar o dataset de vendas
	ErrDatasetFormat  = "SRV_003" // Dataset malformado
	ErrLLMProvider    = "SRV_004" // Erro no provedor de LLM
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrExpiredToken:       http.StatusUnauthorized,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrInvalidParameter:   http.StatusBadRequest,
	ErrMissingParameter:   http.StatusBadRequest,
	ErrEmptyResult:        http.StatusNotFound,
	ErrInternalServer:     http.StatusInternalServerError,
	ErrDatasetLoad:        http.StatusInternalServerError,
	ErrDatasetFormat:      http.StatusInternalServerError,
	ErrLLMProvider:        http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
