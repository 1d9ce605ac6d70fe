package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/obrasync/estoque-api/internal/application/auth"
	"github.com/obrasync/estoque-api/internal/domain"
	"github.com/obrasync/estoque-api/pkg/config"
	"github.com/obrasync/estoque-api/pkg/jwt"
)

const testSecret = "segredo-de-teste"

func jwtCfg() config.JWTConfig {
	return config.JWTConfig{Secret: testSecret, Expiration: 60, Issuer: "estoque-api"}
}

func TestVerifyPasswordComHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)
	uc := auth.NewUseCase(config.AuthConfig{AdminPasswordHash: string(hash)}, jwtCfg())

	token, err := uc.VerifyPassword("senha-forte")
	require.NoError(t, err)

	subject, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	_, err = uc.VerifyPassword("senha-errada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyPasswordTextoPlano(t *testing.T) {
	uc := auth.NewUseCase(config.AuthConfig{AdminPassword: "senha123"}, jwtCfg())

	_, err := uc.VerifyPassword("senha123")
	require.NoError(t, err)

	_, err = uc.VerifyPassword("outra")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyPasswordHashTemPrecedencia(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("do-hash"), bcrypt.MinCost)
	require.NoError(t, err)
	uc := auth.NewUseCase(config.AuthConfig{
		AdminPassword:     "texto-plano",
		AdminPasswordHash: string(hash),
	}, jwtCfg())

	_, err = uc.VerifyPassword("do-hash")
	require.NoError(t, err)

	_, err = uc.VerifyPassword("texto-plano")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyPasswordVaziaOuSemConfiguracao(t *testing.T) {
	uc := auth.NewUseCase(config.AuthConfig{AdminPassword: "senha123"}, jwtCfg())
	_, err := uc.VerifyPassword("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// sem senha configurada nada autentica
	uc = auth.NewUseCase(config.AuthConfig{}, jwtCfg())
	_, err = uc.VerifyPassword("qualquer")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
