package ledger

// CategoryTotal aggregates the transactions of one category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

// Summary is a point-in-time view of the ledger's aggregates.
type Summary struct {
	ByCategory []CategoryTotal
	Income     float64
	Expenses   float64
	Balance    float64
	Count      int
}

// Positive reports whether income covers expenses.
func (s Summary) Positive() bool {
	return s.Balance >= 0
}

// Summarize computes the aggregates. Categories appear in first-seen
// order. Summarize does not notify the observer.
func (l *Ledger) Summarize() Summary {
	s := Summary{
		Income:   l.TotalIncome(),
		Expenses: l.TotalExpenses(),
		Count:    l.Count(),
	}
	s.Balance = s.Income + s.Expenses

	index := make(map[string]int)
	for _, t := range l.transactions {
		i, ok := index[t.Category()]
		if !ok {
			i = len(s.ByCategory)
			index[t.Category()] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: t.Category()})
		}
		s.ByCategory[i].Total += t.Amount()
		s.ByCategory[i].Count++
	}

	return s
}
