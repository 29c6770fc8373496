package dataset

import (
	"errors"
	"fmt"
)

// Erros específicos para o carregamento do dataset de vendas
var (
	// Erros de carga: fonte ausente, ilegível ou sem as colunas obrigatórias
	ErrDataLoad = errors.New("unable to load sales dataset")

	// Erros de formato: datas não parseáveis ou linhas malformadas.
	// Linhas inválidas nunca são descartadas silenciosamente.
	ErrDataFormat = errors.New("malformed sales dataset")
)

// DataError é um erro com contexto adicional para o carregamento de dados
type DataError struct {
	Err     error  // Erro base
	Source  string // Fonte de dados envolvida (caminho ou tabela)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *DataError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError cria um novo DataError
func NewDataError(err error, source string, details string) *DataError {
	return &DataError{
		Err:     err,
		Source:  source,
		Details: details,
	}
}
