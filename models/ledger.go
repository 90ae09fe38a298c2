package models

import "time"

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	// EntryKindSale is a sale on credit; it raises the customer's due amount.
	EntryKindSale EntryKind = "sale"
	// EntryKindPayment is a customer payment; it lowers the due amount.
	EntryKindPayment EntryKind = "payment"
	// EntryKindExpense is money spent by the shop.
	EntryKindExpense EntryKind = "expense"
	// EntryKindCash is a cash drawer movement.
	EntryKindCash EntryKind = "cash"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindSale, EntryKindPayment, EntryKindExpense, EntryKindCash:
		return true
	}
	return false
}

// NeedsCustomer reports whether entries of this kind must reference a customer.
func (k EntryKind) NeedsCustomer() bool {
	return k == EntryKindSale || k == EntryKindPayment
}

// Customer is a shop customer. Amounts are in minor currency units.
// TotalDue is computed by the server.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	TotalDue  int64     `json:"total_due"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LedgerEntry is a single bookkeeping line of a shop.
type LedgerEntry struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Kind       EntryKind `json:"kind"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Cursor returns the pagination key of the entry.
func (e LedgerEntry) Cursor() Cursor {
	return Cursor{At: e.CreatedAt, ID: e.ID}
}

// Summary aggregates ledger entries over a date range.
type Summary struct {
	Range    DateRange `json:"range"`
	Sales    int64     `json:"sales"`
	Payments int64     `json:"payments"`
	Expenses int64     `json:"expenses"`
	Cash     int64     `json:"cash"`
	Count    int       `json:"count"`
}

// Add folds a single entry into the summary.
func (s *Summary) Add(e LedgerEntry) {
	switch e.Kind {
	case EntryKindSale:
		s.Sales += e.Amount
	case EntryKindPayment:
		s.Payments += e.Amount
	case EntryKindExpense:
		s.Expenses += e.Amount
	case EntryKindCash:
		s.Cash += e.Amount
	}
	s.Count++
}
