package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "S/ 50.00", Money(decimal.NewFromInt(50)))
	assert.Equal(t, "S/ 1,234.50", Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "S/ 0.00", Money(decimal.Zero))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "6", Quantity(decimal.RequireFromString("6.000")))
	assert.Equal(t, "2.5", Quantity(decimal.RequireFromString("2.50")))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/03/2026", Date(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "—", Date(time.Time{}))
}
