// Package analytics contains the use cases that summarize an owner's transactions.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type monthBucket struct {
	month   valueobject.Month
	income  decimal.Decimal
	expense decimal.Decimal
}

// Aggregator folds transactions into an AnalyticsSummary in a single pass.
// The zero value is not usable; call NewAggregator.
type Aggregator struct {
	totalIncome  decimal.Decimal
	totalExpense decimal.Decimal
	expenseBy    map[entity.Category]decimal.Decimal
	incomeBy     map[entity.Category]decimal.Decimal
	months       map[valueobject.Month]*monthBucket
	count        int
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		expenseBy: make(map[entity.Category]decimal.Decimal),
		incomeBy:  make(map[entity.Category]decimal.Decimal),
		months:    make(map[valueobject.Month]*monthBucket),
	}
}

// Add folds a batch of transactions into the running totals.
func (a *Aggregator) Add(txns ...*entity.Transaction) {
	for _, txn := range txns {
		a.add(txn)
	}
}

func (a *Aggregator) add(txn *entity.Transaction) {
	month := valueobject.MonthOf(txn.Date)
	bucket, ok := a.months[month]
	if !ok {
		bucket = &monthBucket{month: month}
		a.months[month] = bucket
	}

	switch txn.Kind {
	case entity.TransactionKindIncome:
		a.totalIncome = a.totalIncome.Add(txn.Amount)
		a.incomeBy[txn.Category] = a.incomeBy[txn.Category].Add(txn.Amount)
		bucket.income = bucket.income.Add(txn.Amount)
	case entity.TransactionKindExpense:
		a.totalExpense = a.totalExpense.Add(txn.Amount)
		a.expenseBy[txn.Category] = a.expenseBy[txn.Category].Add(txn.Amount)
		bucket.expense = bucket.expense.Add(txn.Amount)
	default:
		return
	}
	a.count++
}

// Summary returns the summary of everything added so far.
func (a *Aggregator) Summary() *entity.AnalyticsSummary {
	buckets := make([]*monthBucket, 0, len(a.months))
	for _, b := range a.months {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].month.Before(buckets[j].month)
	})

	series := make([]entity.MonthlyTotal, len(buckets))
	for i, b := range buckets {
		series[i] = entity.MonthlyTotal{
			MonthKey: b.month.Key(),
			Label:    b.month.Label(),
			Income:   b.income,
			Expense:  b.expense,
		}
	}

	return &entity.AnalyticsSummary{
		TotalIncome:        a.totalIncome,
		TotalExpense:       a.totalExpense,
		NetSavings:         a.totalIncome.Sub(a.totalExpense),
		TopExpenseCategory: topCategory(a.expenseBy),
		TopIncomeCategory:  topCategory(a.incomeBy),
		MonthlySeries:      series,
		ExpenseByCategory:  copyTotals(a.expenseBy),
		IncomeByCategory:   copyTotals(a.incomeBy),
		TransactionCount:   a.count,
	}
}

// topCategory returns the category with the largest total.
// Ties go to the lexicographically smallest name.
func topCategory(totals map[entity.Category]decimal.Decimal) string {
	if len(totals) == 0 {
		return entity.NoCategory
	}

	var best entity.Category
	var bestAmount decimal.Decimal
	first := true
	for category, amount := range totals {
		switch {
		case first, amount.GreaterThan(bestAmount):
			best, bestAmount = category, amount
		case amount.Equal(bestAmount) && category < best:
			best = category
		}
		first = false
	}
	return string(best)
}

func copyTotals(in map[entity.Category]decimal.Decimal) map[entity.Category]decimal.Decimal {
	out := make(map[entity.Category]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
