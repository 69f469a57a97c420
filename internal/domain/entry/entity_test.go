package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReferenceDate(t *testing.T) {
	paid := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	e := New("owner-1")
	created := e.CreatedAt

	// Sem datas, vale a criação
	assert.True(t, created.Equal(e.ReferenceDate()))

	// Com vencimento, vale o vencimento
	e.DueDate = &due
	assert.True(t, due.Equal(e.ReferenceDate()))

	// Pagamento prevalece sobre tudo
	e.PaidDate = &paid
	assert.True(t, paid.Equal(e.ReferenceDate()))
}
