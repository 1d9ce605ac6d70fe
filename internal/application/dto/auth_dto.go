package dto

// VerifyPasswordRequest payload de login por senha compartilhada.
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// TokenResponse token de sessão emitido após autenticação.
type TokenResponse struct {
	Token string `json:"token"`
}
