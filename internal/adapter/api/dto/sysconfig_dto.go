package dto

import "github.com/gestaofacil/backend/internal/domain/sysconfig"

// SystemConfigRequest representa as configurações do sistema enviadas pelo
// cliente. A gravação é sempre integral: o payload substitui todos os campos.
type SystemConfigRequest struct {
	CompanyName string `json:"companyName"`
	CNPJ        string `json:"cnpj"`
	IE          string `json:"ie"`
	IM          string `json:"im"`
	Address     string `json:"address"`
	Number      string `json:"number"`
	Complement  string `json:"complement"`
	District    string `json:"district"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	LogoBase64  string `json:"logoBase64"`

	PrinterName string `json:"printerName"`
	PaperWidth  int    `json:"paperWidth"`
	PaperHeight int    `json:"paperHeight"`
	AutoPrint   bool   `json:"autoPrint"`
	Copies      int    `json:"copies"`

	SystemName      string `json:"systemName"`
	DefaultCurrency string `json:"defaultCurrency"`
	DateFormat      string `json:"dateFormat"`
	TimeFormat      string `json:"timeFormat"`

	NfeEnabled     bool   `json:"nfeEnabled"`
	NfeApiURL      string `json:"nfeApiUrl"`
	NfeApiToken    string `json:"nfeApiToken"`
	NfeSeries      string `json:"nfeSeries"`
	NfeLastNumber  int64  `json:"nfeLastNumber"`
	NfeEnvironment string `json:"nfeEnvironment"`
}

// Apply copia os campos da requisição para a configuração
func (r *SystemConfigRequest) Apply(c *sysconfig.Config) {
	c.CompanyName = r.CompanyName
	c.CNPJ = r.CNPJ
	c.IE = r.IE
	c.IM = r.IM
	c.Address = r.Address
	c.Number = r.Number
	c.Complement = r.Complement
	c.District = r.District
	c.City = r.City
	c.State = r.State
	c.ZipCode = r.ZipCode
	c.Phone = r.Phone
	c.Email = r.Email
	c.Website = r.Website
	c.LogoBase64 = r.LogoBase64

	c.PrinterName = r.PrinterName
	c.PaperWidth = r.PaperWidth
	c.PaperHeight = r.PaperHeight
	c.AutoPrint = r.AutoPrint
	c.Copies = r.Copies

	c.SystemName = r.SystemName
	c.DefaultCurrency = r.DefaultCurrency
	c.DateFormat = r.DateFormat
	c.TimeFormat = r.TimeFormat

	c.NfeEnabled = r.NfeEnabled
	c.NfeApiURL = r.NfeApiURL
	c.NfeApiToken = r.NfeApiToken
	c.NfeSeries = r.NfeSeries
	c.NfeLastNumber = r.NfeLastNumber
	c.NfeEnvironment = r.NfeEnvironment
}
