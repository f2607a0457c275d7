package components

import "github.com/Veraticus/tally/internal/model"

// FilterRequestedMsg asks the browser to show only one category. An empty
// Category clears the filter.
type FilterRequestedMsg struct {
	Category string
}

// DeleteRequestedMsg asks the browser to remove a transaction from the ledger.
type DeleteRequestedMsg struct {
	Transaction model.Transaction
}
