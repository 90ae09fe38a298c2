package events

import "github.com/MKhiriev/go-ledger-sync/models"

// Event kinds delivered on the bus. Realtime envelopes carry the same names.
const (
	KindSaleUpdate       models.EventKind = "sale-update"
	KindExpenseUpdate    models.EventKind = "expense-update"
	KindCashUpdate       models.EventKind = "cash-update"
	KindCustomerUpdate   models.EventKind = "customer-update"
	KindSyncComplete     models.EventKind = "sync-complete"
	KindMutationRejected models.EventKind = "mutation-rejected"
	KindConnectivity     models.EventKind = "connectivity-change"
)

// DataKinds are the kinds that signal a change of ledger data.
var DataKinds = []models.EventKind{KindSaleUpdate, KindExpenseUpdate, KindCashUpdate, KindCustomerUpdate}

// KnownKind reports whether k is one of the kinds above.
func KnownKind(k models.EventKind) bool {
	switch k {
	case KindSaleUpdate, KindExpenseUpdate, KindCashUpdate, KindCustomerUpdate,
		KindSyncComplete, KindMutationRejected, KindConnectivity:
		return true
	}
	return false
}

// KindsForEntry returns the kinds a write of entry should emit. Payments
// settle sales, so they are announced as sale updates. Entries bound to a
// customer also change that customer's due amount.
func KindsForEntry(entry models.LedgerEntry) []models.EventKind {
	var kinds []models.EventKind
	switch entry.Kind {
	case models.EntryKindSale, models.EntryKindPayment:
		kinds = append(kinds, KindSaleUpdate)
	case models.EntryKindExpense:
		kinds = append(kinds, KindExpenseUpdate)
	case models.EntryKindCash:
		kinds = append(kinds, KindCashUpdate)
	}
	if entry.CustomerID != "" {
		kinds = append(kinds, KindCustomerUpdate)
	}
	return kinds
}
