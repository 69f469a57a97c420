package dto

// RegisterRequest representa os dados para registro de um novo usuário
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest representa as credenciais de acesso
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de autenticação bem-sucedida
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"` // segundos
	User      UserResponse `json:"user"`
}

// UserResponse é a projeção pública do usuário autenticado
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MeResponse representa a resposta de GET /auth/me
type MeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Logged bool   `json:"logged"`
}

// ForgotPasswordRequest solicita o envio do link de redefinição
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordResponse confirma o processamento da solicitação.
// Token só é preenchido com RESET_RETURN_TOKEN=true (gancho de teste).
type ForgotPasswordResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// ResetPasswordRequest aplica uma nova senha a partir de um token válido
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
