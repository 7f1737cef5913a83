package categories

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

func txns() []model.Transaction {
	mk := func(desc string) model.Transaction {
		return model.Transaction{
			Timestamp:   time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC),
			Description: desc,
			Quantity:    decimal.NewFromInt(1),
			GrossPrice:  decimal.NewFromInt(5),
		}
	}
	return []model.Transaction{mk("Beer"), mk("Wine"), mk("Beer"), mk("Cider")}
}

func TestDistinctFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{"Beer", "Wine", "Cider"}, Distinct(txns()))
}

func TestDistinctEmpty(t *testing.T) {
	assert.Nil(t, Distinct(nil))
}

func TestCounts(t *testing.T) {
	counts := Counts(txns())
	assert.Equal(t, 2, counts["Beer"])
	assert.Equal(t, 1, counts["Wine"])
	assert.Equal(t, 1, counts["Cider"])
}

func TestService(t *testing.T) {
	svc := NewService(map[string][]string{
		"glasses": {"Beer", "Wine"},
		"bottles": {"Red bottle"},
	})

	assert.Equal(t, []string{"bottles", "glasses"}, svc.GroupNames())

	members, ok := svc.Members("glasses")
	require.True(t, ok)
	assert.Equal(t, []string{"Beer", "Wine"}, members)

	_, ok = svc.Members("missing")
	assert.False(t, ok)

	assert.True(t, svc.Known("Beer"))
	assert.False(t, svc.Known("Cider"))
}
