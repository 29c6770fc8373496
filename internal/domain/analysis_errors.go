package domain

import (
	"errors"
	"fmt"
)

// Erros compartilhados pelas operações analíticas
var (
	// Erros de validação de parâmetros
	ErrInvalidParameter = errors.New("invalid parameter")

	// Erros de resultado vazio: os filtros não deixaram linhas suficientes
	// para que a estatística solicitada seja definida
	ErrEmptyResult = errors.New("no rows match the given filters")
)

// AnalysisError é um erro com contexto adicional para operações analíticas
type AnalysisError struct {
	Err     error  // Erro base
	Tool    string // Ferramenta analítica envolvida
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError cria um novo AnalysisError
func NewAnalysisError(err error, tool string, details string) *AnalysisError {
	return &AnalysisError{
		Err:     err,
		Tool:    tool,
		Details: details,
	}
}

// IsEmptyResult verifica se o erro indica ausência de linhas após os filtros
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsInvalidParameter verifica se o erro indica parâmetro fora do domínio
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
