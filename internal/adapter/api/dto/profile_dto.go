package dto

import "github.com/gestaofacil/backend/internal/domain/user"

// ProfileResponse representa o perfil do usuário autenticado
type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Bio          string `json:"bio"`
	AvatarBase64 string `json:"avatarBase64"`
}

// NewProfileResponse monta a projeção de perfil a partir do usuário
func NewProfileResponse(u *user.User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		City:         u.City,
		Bio:          u.Bio,
		AvatarBase64: u.AvatarBase64,
	}
}

// UpdateProfileRequest representa os campos editáveis do perfil. O nome só
// é alterado quando enviado não-vazio; o email nunca muda por aqui.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Bio          string `json:"bio"`
	AvatarBase64 string `json:"avatarBase64"`
}
