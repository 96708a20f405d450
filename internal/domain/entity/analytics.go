package entity

import "github.com/shopspring/decimal"

// NoCategory is reported as the top category when there are no transactions of a kind.
const NoCategory = "N/A"

// MonthlyTotal holds income and expense sums for a single calendar month.
type MonthlyTotal struct {
	MonthKey string // "2006-01"
	Label    string // "Jan 2006"
	Income   decimal.Decimal
	Expense  decimal.Decimal
}

// AnalyticsSummary is derived from an owner's full transaction set on every request.
type AnalyticsSummary struct {
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
	NetSavings         decimal.Decimal
	TopExpenseCategory string
	TopIncomeCategory  string
	MonthlySeries      []MonthlyTotal
	ExpenseByCategory  map[Category]decimal.Decimal
	IncomeByCategory   map[Category]decimal.Decimal
	TransactionCount   int
}
