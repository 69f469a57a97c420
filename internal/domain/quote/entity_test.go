package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReplaceItems(t *testing.T) {
	q := New("owner-1")
	q.ReplaceItems([]Item{
		{Description: "Instalação", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("45.90")},
		{Description: "Material", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("120")},
	})

	assert.Equal(t, "91.8", q.Items[0].Total.String())
	assert.Equal(t, "211.8", q.Subtotal.String())

	// Não há desconto em orçamento: subtotal == total
	assert.True(t, q.Subtotal.Equal(q.Total))

	for _, item := range q.Items {
		assert.NotEmpty(t, item.ID)
	}
}

func TestReplaceItemsDiscardsPreviousList(t *testing.T) {
	q := New("owner-1")
	q.ReplaceItems([]Item{{Description: "Antigo", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}})
	q.ReplaceItems([]Item{{Description: "Novo", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(99)}})

	assert.Len(t, q.Items, 1)
	assert.Equal(t, "Novo", q.Items[0].Description)
	assert.Equal(t, "99", q.Total.String())
}
