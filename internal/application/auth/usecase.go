package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/pkg/config"
	"github.com/obrasync/estoque-api/pkg/jwt"
)

// UseCase autenticação de administrador único por senha compartilhada.
// Senha correta emite um JWT; não há cadastro de usuários.
type UseCase struct {
	authCfg config.AuthConfig
	jwtCfg  config.JWTConfig
}

// NewUseCase constrói o caso de uso de autenticação.
func NewUseCase(authCfg config.AuthConfig, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{authCfg: authCfg, jwtCfg: jwtCfg}
}

// VerifyPassword compara a senha com o hash bcrypt configurado (ou, na falta
// dele, com a senha em claro em comparação de tempo constante) e emite o
// token de sessão.
func (uc *UseCase) VerifyPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrUnauthorized
	}

	if uc.authCfg.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(uc.authCfg.AdminPasswordHash), []byte(password)); err != nil {
			return "", domain.ErrUnauthorized
		}
	} else {
		if uc.authCfg.AdminPassword == "" ||
			subtle.ConstantTimeCompare([]byte(uc.authCfg.AdminPassword), []byte(password)) != 1 {
			return "", domain.ErrUnauthorized
		}
	}

	return jwt.Generate(uc.jwtCfg.Secret, "admin", uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
}
