package dto

import "github.com/gestaofacil/backend/internal/domain/customer"

// CustomerRequest representa os dados de criação/edição de cliente
type CustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	CpfCnpj    string `json:"cpfCnpj"`
	IE         string `json:"ie"`
	IM         string `json:"im"`
	Address    string `json:"address"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Notes      string `json:"notes"`
}

// Apply copia os campos da requisição para o cliente
func (r *CustomerRequest) Apply(c *customer.Customer) {
	c.Name = r.Name
	c.Email = r.Email
	c.Phone = r.Phone
	c.CpfCnpj = r.CpfCnpj
	c.IE = r.IE
	c.IM = r.IM
	c.Address = r.Address
	c.Number = r.Number
	c.Complement = r.Complement
	c.District = r.District
	c.City = r.City
	c.State = r.State
	c.ZipCode = r.ZipCode
	c.Notes = r.Notes
}
