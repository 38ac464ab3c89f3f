package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeTotals(t *testing.T) {
	q := Quotation{
		QuoteItems: []QuoteItem{
			{Quantity: 2, Rate: 50, Amount: 100, VAT: 16},
			{Quantity: 1, Rate: 250, Amount: 250, VAT: 0},
			{Quantity: 3, Rate: 10, Amount: 30, VAT: 8},
		},
	}
	q.RecomputeTotals()

	assert.InDelta(t, 380.0, q.Subtotal, 1e-9)
	assert.InDelta(t, 100*0.16+30*0.08, q.Tax, 1e-9)
	assert.InDelta(t, q.Subtotal+q.Tax, q.Total, 1e-9)
}

func TestRecomputeTotalsOverwritesStaleValues(t *testing.T) {
	q := Quotation{Subtotal: 999, Tax: 999, Total: 999}
	q.RecomputeTotals()

	assert.Zero(t, q.Subtotal)
	assert.Zero(t, q.Tax)
	assert.Zero(t, q.Total)
}
