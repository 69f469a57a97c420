package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("nome não pode ser vazio")

// Customer representa um cliente do dono autenticado
type Customer struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CpfCnpj    string    `json:"cpfCnpj"`    // CPF ou CNPJ
	IE         string    `json:"ie"`         // Inscrição Estadual
	IM         string    `json:"im"`         // Inscrição Municipal
	Address    string    `json:"address"`    // Endereço
	Number     string    `json:"number"`     // Número
	Complement string    `json:"complement"` // Complemento
	District   string    `json:"district"`   // Bairro
	City       string    `json:"city"`       // Cidade
	State      string    `json:"state"`      // Estado (UF)
	ZipCode    string    `json:"zipCode"`    // CEP
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCustomer cria um novo cliente
func NewCustomer(ownerID, name string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Customer{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}, nil
}
