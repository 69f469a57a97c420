package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/domain/quote"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	assert.Equal(t, "R$ 5,50", FormatBRL(decimal.RequireFromString("5.5")))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 1.234.567,89", FormatBRL(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "-R$ 42,00", FormatBRL(decimal.NewFromInt(-42)))
}

func TestQuotePDF(t *testing.T) {
	q := quote.New("owner-1")
	q.CustomerName = "João da Silva"
	q.ReplaceItems([]quote.Item{
		{Description: "Instalação elétrica", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("350.00")},
	})

	cfg := sysconfig.NewDefault("owner-1")
	cfg.CompanyName = "Serviços Ltda"

	data, err := NewPDFService().QuotePDF(q, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Cabeçalho padrão de arquivos PDF
	assert.Equal(t, "%PDF", string(data[:4]))
}
