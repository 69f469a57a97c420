package sysconfig

import (
	"time"

	"github.com/google/uuid"
)

// Config guarda as configurações do sistema de um dono: dados da empresa,
// impressão e integração com NFe. Uma linha por dono.
type Config struct {
	ID      string `json:"id"`
	OwnerID string `json:"-"`

	// Dados da empresa
	CompanyName string `json:"companyName"`
	CNPJ        string `json:"cnpj"`
	IE          string `json:"ie"` // Inscrição Estadual
	IM          string `json:"im"` // Inscrição Municipal
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

	// Impressão
	PrinterName string `json:"printerName"`
	PaperWidth  int    `json:"paperWidth"`  // mm
	PaperHeight int    `json:"paperHeight"` // mm
	AutoPrint   bool   `json:"autoPrint"`
	Copies      int    `json:"copies"`

	// Sistema
	SystemName      string `json:"systemName"`
	DefaultCurrency string `json:"defaultCurrency"`
	DateFormat      string `json:"dateFormat"`
	TimeFormat      string `json:"timeFormat"`

	// NFe
	NfeEnabled     bool   `json:"nfeEnabled"`
	NfeApiURL      string `json:"nfeApiUrl"`
	NfeApiToken    string `json:"nfeApiToken"`
	NfeSeries      string `json:"nfeSeries"`
	NfeLastNumber  int64  `json:"nfeLastNumber"`
	NfeEnvironment string `json:"nfeEnvironment"` // PRODUCTION, HOMOLOGATION

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDefault materializa a configuração padrão de um dono na primeira leitura
func NewDefault(ownerID string) *Config {
	now := time.Now()
	return &Config{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		SystemName:      "Negócio",
		DefaultCurrency: "BRL",
		DateFormat:      "DD/MM/YYYY",
		TimeFormat:      "24h",
		AutoPrint:       false,
		Copies:          1,
		PaperWidth:      80,
		PaperHeight:     297,
		NfeEnabled:      false,
		NfeEnvironment:  "HOMOLOGATION",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
