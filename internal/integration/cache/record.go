package cache

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// summaryRecord is the JSON shape stored in Redis.
type summaryRecord struct {
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpense       decimal.Decimal            `json:"totalExpense"`
	NetSavings         decimal.Decimal            `json:"netSavings"`
	TopExpenseCategory string                     `json:"topExpenseCategory"`
	TopIncomeCategory  string                     `json:"topIncomeCategory"`
	MonthlySeries      []monthRecord              `json:"monthlySeries"`
	ExpenseByCategory  map[string]decimal.Decimal `json:"expenseByCategory"`
	IncomeByCategory   map[string]decimal.Decimal `json:"incomeByCategory"`
	TransactionCount   int                        `json:"transactionCount"`
}

type monthRecord struct {
	MonthKey string          `json:"monthKey"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

func summaryRecordFromEntity(s *entity.AnalyticsSummary) summaryRecord {
	record := summaryRecord{
		TotalIncome:        s.TotalIncome,
		TotalExpense:       s.TotalExpense,
		NetSavings:         s.NetSavings,
		TopExpenseCategory: s.TopExpenseCategory,
		TopIncomeCategory:  s.TopIncomeCategory,
		MonthlySeries:      make([]monthRecord, 0, len(s.MonthlySeries)),
		ExpenseByCategory:  categoryMapToRecord(s.ExpenseByCategory),
		IncomeByCategory:   categoryMapToRecord(s.IncomeByCategory),
		TransactionCount:   s.TransactionCount,
	}
	for _, m := range s.MonthlySeries {
		record.MonthlySeries = append(record.MonthlySeries, monthRecord{
			MonthKey: m.MonthKey,
			Label:    m.Label,
			Income:   m.Income,
			Expense:  m.Expense,
		})
	}
	return record
}

func (r summaryRecord) toEntity() *entity.AnalyticsSummary {
	summary := &entity.AnalyticsSummary{
		TotalIncome:        r.TotalIncome,
		TotalExpense:       r.TotalExpense,
		NetSavings:         r.NetSavings,
		TopExpenseCategory: r.TopExpenseCategory,
		TopIncomeCategory:  r.TopIncomeCategory,
		MonthlySeries:      make([]entity.MonthlyTotal, 0, len(r.MonthlySeries)),
		ExpenseByCategory:  recordToCategoryMap(r.ExpenseByCategory),
		IncomeByCategory:   recordToCategoryMap(r.IncomeByCategory),
		TransactionCount:   r.TransactionCount,
	}
	for _, m := range r.MonthlySeries {
		summary.MonthlySeries = append(summary.MonthlySeries, entity.MonthlyTotal{
			MonthKey: m.MonthKey,
			Label:    m.Label,
			Income:   m.Income,
			Expense:  m.Expense,
		})
	}
	return summary
}

func categoryMapToRecord(in map[entity.Category]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func recordToCategoryMap(in map[string]decimal.Decimal) map[entity.Category]decimal.Decimal {
	out := make(map[entity.Category]decimal.Decimal, len(in))
	for k, v := range in {
		out[entity.Category(k)] = v
	}
	return out
}
