package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	s := New("owner-1")
	s.Items = []Item{
		{Description: "Produto A", Quantity: dec("2"), UnitPrice: dec("10.50")},
		{Description: "Produto B", Quantity: dec("1"), UnitPrice: dec("5.25")},
	}

	s.CalculateTotals()

	assert.Equal(t, "21", s.Items[0].Total.String())
	assert.Equal(t, "5.25", s.Items[1].Total.String())
	assert.Equal(t, "26.25", s.Subtotal.String())
	assert.Equal(t, "26.25", s.Total.String())
}

func TestCalculateTotalsDiscountPrecedence(t *testing.T) {
	s := New("owner-1")
	s.Items = []Item{{Description: "Produto", Quantity: dec("1"), UnitPrice: dec("100")}}

	// Desconto em R$ prevalece sobre o percentual
	s.Discount = decimal.NewNullDecimal(dec("30"))
	s.DiscountPercent = decimal.NewNullDecimal(dec("10"))
	s.CalculateTotals()
	assert.Equal(t, "70", s.Total.String())

	// Sem valor absoluto, o percentual é aplicado
	s.Discount = decimal.NullDecimal{}
	s.CalculateTotals()
	assert.Equal(t, "90", s.Total.String())
}

func TestCalculateTotalsShippingAndTax(t *testing.T) {
	s := New("owner-1")
	s.Items = []Item{{Description: "Produto", Quantity: dec("3"), UnitPrice: dec("33.333")}}
	s.Shipping = decimal.NewNullDecimal(dec("15"))
	s.Tax = decimal.NewNullDecimal(dec("2.50"))

	s.CalculateTotals()

	// Preço unitário arredondado antes de multiplicar
	assert.Equal(t, "33.33", s.Items[0].UnitPrice.String())
	assert.Equal(t, "99.99", s.Subtotal.String())
	assert.Equal(t, "117.49", s.Total.String())
}

func TestValidStatus(t *testing.T) {
	status, ok := ValidStatus("PAID")
	assert.True(t, ok)
	assert.Equal(t, StatusPaid, status)

	_, ok = ValidStatus("SHIPPED")
	assert.False(t, ok)
}
