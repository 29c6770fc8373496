package domain

import "github.com/golang-jwt/jwt/v5"

// Operator é o único usuário do serviço, definido por configuração.
// Não há estado multiusuário: a credencial vive no ambiente do processo.
type Operator struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Claims são as claims do token JWT emitido para o operador.
type Claims struct {
	OperatorEmail string
	jwt.RegisteredClaims
}
