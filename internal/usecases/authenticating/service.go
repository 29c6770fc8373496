package authenticating

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/cpg-decision-api/internal/config"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator autentica o operador único do serviço e valida tokens.
// Não há cadastro nem estado multiusuário: a credencial vem da configuração.
type Authenticator interface {
	Login(email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg      *config.Config
	operator domain.Operator
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
		operator: domain.Operator{
			Email:        cfg.Auth.OperatorEmail,
			PasswordHash: cfg.Auth.OperatorPasswordHash,
		},
	}
}

// Login compara a credencial informada com a do operador e emite o token JWT
func (s *Service) Login(email, password string) (string, error) {
	if s.operator.PasswordHash == "" {
		return "", NewAuthError(ErrMissingCredential, "AUTH_000", "defina AUTH_OPERATOR_PASSWORD_HASH")
	}

	if email != s.operator.Email {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.operator.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour

	claims := domain.Claims{
		OperatorEmail: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

// ValidateToken verifica assinatura e validade do token e devolve as claims
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
