package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MonthlyTotalResponse is one point of the monthly income/expense series.
type MonthlyTotalResponse struct {
	Month   string  `json:"month"`
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// AnalyticsResponse is returned by the analytics endpoint.
type AnalyticsResponse struct {
	TotalIncome        float64                `json:"totalIncome"`
	TotalExpense       float64                `json:"totalExpense"`
	NetSavings         float64                `json:"netSavings"`
	TopExpenseCategory string                 `json:"topExpenseCategory"`
	TopIncomeCategory  string                 `json:"topIncomeCategory"`
	MonthlySeries      []MonthlyTotalResponse `json:"monthlySeries"`
	ExpenseByCategory  map[string]float64     `json:"expenseByCategory"`
	IncomeByCategory   map[string]float64     `json:"incomeByCategory"`
	TransactionCount   int                    `json:"transactionCount"`
}

// ToAnalyticsResponse converts an analytics summary to its response DTO.
func ToAnalyticsResponse(s *entity.AnalyticsSummary) AnalyticsResponse {
	series := make([]MonthlyTotalResponse, 0, len(s.MonthlySeries))
	for _, m := range s.MonthlySeries {
		series = append(series, MonthlyTotalResponse{
			Month:   m.MonthKey,
			Label:   m.Label,
			Income:  m.Income.InexactFloat64(),
			Expense: m.Expense.InexactFloat64(),
		})
	}

	return AnalyticsResponse{
		TotalIncome:        s.TotalIncome.InexactFloat64(),
		TotalExpense:       s.TotalExpense.InexactFloat64(),
		NetSavings:         s.NetSavings.InexactFloat64(),
		TopExpenseCategory: s.TopExpenseCategory,
		TopIncomeCategory:  s.TopIncomeCategory,
		MonthlySeries:      series,
		ExpenseByCategory:  categoryTotals(s.ExpenseByCategory),
		IncomeByCategory:   categoryTotals(s.IncomeByCategory),
		TransactionCount:   s.TransactionCount,
	}
}

func categoryTotals(in map[entity.Category]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[string(k)] = v.InexactFloat64()
	}
	return out
}
