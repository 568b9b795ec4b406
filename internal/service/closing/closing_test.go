package closing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/models"
)

func entry(etype string, amount float64) models.FinancialEntry {
	return models.FinancialEntry{Type: etype, Amount: amount}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.FinancialEntry{
		entry(models.EntryTypeIncome, 100),
		entry(models.EntryTypeExpense, 40),
		entry(models.EntryTypeTax, 10),
	})

	require.Equal(t, 100.0, s.TotalEntries)
	require.Equal(t, 40.0, s.TotalExpenses)
	require.Equal(t, 10.0, s.TotalTaxes)
	require.Equal(t, 50.0, s.Balance)
	require.Equal(t, 50.0, s.ProfitMargin)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	require.Zero(t, s.TotalEntries)
	require.Zero(t, s.Balance)
	require.Zero(t, s.ProfitMargin)
}

func TestSummarizeNoIncome(t *testing.T) {
	s := Summarize([]models.FinancialEntry{
		entry(models.EntryTypeExpense, 30),
		entry(models.EntryTypeTax, 5),
	})

	require.Equal(t, -35.0, s.Balance)
	// margin is defined as 0 when there is no income
	require.Zero(t, s.ProfitMargin)
}

func TestSummarizeFractional(t *testing.T) {
	s := Summarize([]models.FinancialEntry{
		entry(models.EntryTypeIncome, 0.30),
		entry(models.EntryTypeIncome, 0.10),
		entry(models.EntryTypeExpense, 0.20),
	})

	require.InDelta(t, 0.40, s.TotalEntries, 1e-9)
	require.InDelta(t, 0.20, s.Balance, 1e-9)
	require.InDelta(t, 50.0, s.ProfitMargin, 1e-9)
}

func TestSummarizeIgnoresUnknownTypes(t *testing.T) {
	s := Summarize([]models.FinancialEntry{
		entry(models.EntryTypeIncome, 100),
		entry("other", 999),
	})

	require.Equal(t, 100.0, s.TotalEntries)
	require.Equal(t, 100.0, s.Balance)
}

func TestSummarizeZeroAmounts(t *testing.T) {
	s := Summarize([]models.FinancialEntry{
		entry(models.EntryTypeIncome, 0),
		entry(models.EntryTypeExpense, 0),
	})

	require.Zero(t, s.Balance)
	require.Zero(t, s.ProfitMargin)
}
