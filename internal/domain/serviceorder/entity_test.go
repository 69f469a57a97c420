package serviceorder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReplaceItems(t *testing.T) {
	o := New("owner-1")
	o.ReplaceItems([]Item{
		{ItemName: "Troca de tela", Quantity: dec("1"), UnitPrice: dec("150"), IsService: true},
		{ItemName: "Tela", Quantity: dec("1"), UnitPrice: dec("320.50")},
		{ItemName: "Película", Quantity: dec("2"), UnitPrice: dec("25")},
	})

	// Mão de obra e peças somados em separado
	assert.Equal(t, "150", o.LaborCost.String())
	assert.Equal(t, "370.5", o.PartsCost.String())
	assert.Equal(t, "520.5", o.Total.String())

	for _, item := range o.Items {
		assert.NotEmpty(t, item.ID)
	}
}

func TestReplaceItemsKeepsExistingIDs(t *testing.T) {
	o := New("owner-1")
	o.ReplaceItems([]Item{{ID: "item-1", ItemName: "Revisão", Quantity: dec("1"), UnitPrice: dec("80"), IsService: true}})

	assert.Equal(t, "item-1", o.Items[0].ID)
}

func TestChangeStatusSetsCompletedDateOnce(t *testing.T) {
	o := New("owner-1")
	require.Nil(t, o.CompletedDate)

	old := o.ChangeStatus(StatusInProgress)
	assert.Equal(t, StatusPending, old)
	assert.Nil(t, o.CompletedDate)

	o.ChangeStatus(StatusCompleted)
	require.NotNil(t, o.CompletedDate)
	first := *o.CompletedDate

	// Reabrir e concluir de novo não altera a data original
	o.ChangeStatus(StatusInProgress)
	time.Sleep(10 * time.Millisecond)
	o.ChangeStatus(StatusCompleted)
	assert.True(t, first.Equal(*o.CompletedDate))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Em Andamento", StatusInProgress.Label())
	assert.Equal(t, "Concluído", StatusCompleted.Label())
	assert.Equal(t, "DESCONHECIDO", Status("DESCONHECIDO").Label())
}

func TestValidStatus(t *testing.T) {
	status, ok := ValidStatus("PAUSED")
	assert.True(t, ok)
	assert.Equal(t, StatusPaused, status)

	_, ok = ValidStatus("DONE")
	assert.False(t, ok)
}
