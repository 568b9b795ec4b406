package closing

import (
	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

type Summary struct {
	TotalEntries  float64 `json:"total_entries"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalTaxes    float64 `json:"total_taxes"`
	Balance       float64 `json:"balance"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// Summarize folds a set of financial entries into period totals. It is a pure
// recomputation over the given rows; nothing is maintained incrementally.
func Summarize(entries []models.FinancialEntry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Type {
		case models.EntryTypeIncome:
			s.TotalEntries += e.Amount
		case models.EntryTypeExpense:
			s.TotalExpenses += e.Amount
		case models.EntryTypeTax:
			s.TotalTaxes += e.Amount
		}
	}
	s.Balance = s.TotalEntries - s.TotalExpenses - s.TotalTaxes
	if s.TotalEntries != 0 {
		s.ProfitMargin = s.Balance / s.TotalEntries * 100
	}
	return s
}
