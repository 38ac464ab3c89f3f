package models

// QuoteItem represents a single line item in a quotation
type QuoteItem struct {
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
	VAT      float64 `json:"vat"`
}

// Quotation represents a quotation document built from form input.
// It is never stored as a record; the generated PDF is the persisted artifact.
type Quotation struct {
	QuotationNo string      `json:"quotation_no"`
	Date        string      `json:"date"`
	ClientName  string      `json:"client_name"`
	Rep         string      `json:"rep"`
	QuoteItems  []QuoteItem `json:"quote_items"`
	Subtotal    float64     `json:"subtotal"`
	Tax         float64     `json:"tax"`
	Total       float64     `json:"total"`
}

// RecomputeTotals derives subtotal, tax and total from the item list.
// Totals are always recomputed, never carried independently.
func (q *Quotation) RecomputeTotals() {
	q.Subtotal = 0
	q.Tax = 0
	for _, item := range q.QuoteItems {
		q.Subtotal += item.Amount
		q.Tax += item.Amount * (item.VAT / 100)
	}
	q.Total = q.Subtotal + q.Tax
}

// QuotationFile is one stored quotation PDF found by a search.
// RelPath is relative to the quotations storage root.
type QuotationFile struct {
	File    string `json:"file"`
	RelPath string `json:"url"`
}
