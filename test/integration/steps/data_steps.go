package steps

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// theFollowingTransactionsExistFor inserts rows from a table with the columns
// kind, amount, category, description and date.
func (t *TestContext) theFollowingTransactionsExistFor(email string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table needs a header and at least one row")
	}

	header := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}
	for _, col := range []string{"kind", "amount", "category", "date"} {
		if _, ok := header[col]; !ok {
			return fmt.Errorf("transaction table is missing column %q", col)
		}
	}

	ownerID := t.ownerID(email)
	models := make([]*model.TransactionModel, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		value := func(col string) string {
			if i, ok := header[col]; ok {
				return row.Cells[i].Value
			}
			return ""
		}

		amount, err := decimal.NewFromString(value("amount"))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", value("amount"), err)
		}
		date, ok := valueobject.ParseDate(value("date"))
		if !ok {
			return fmt.Errorf("invalid date %q", value("date"))
		}

		txn := entity.NewTransaction(
			ownerID,
			entity.TransactionKind(value("kind")),
			amount,
			entity.Category(value("category")),
			value("description"),
			date,
		)
		models = append(models, model.TransactionFromEntity(txn))
	}

	return t.db.DbConn.Create(&models).Error
}

// nTransactionsExistFor inserts count identical rows on the same day.
func (t *TestContext) nTransactionsExistFor(count int, kind, amount, email, day string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	date, ok := valueobject.ParseDate(day)
	if !ok {
		return fmt.Errorf("invalid date %q", day)
	}

	ownerID := t.ownerID(email)
	models := make([]*model.TransactionModel, 0, count)
	for i := 0; i < count; i++ {
		txn := entity.NewTransaction(ownerID, entity.TransactionKind(kind), value, entity.CategoryOthers, fmt.Sprintf("row %d", i+1), date)
		models = append(models, model.TransactionFromEntity(txn))
	}
	if len(models) == 0 {
		return nil
	}
	return t.db.DbConn.Create(&models).Error
}

func (t *TestContext) currentOwnerID() (uuid.UUID, error) {
	if t.currentOwner == "" {
		return uuid.Nil, fmt.Errorf("no authenticated owner in this scenario")
	}
	return t.ownerID(t.currentOwner), nil
}

func parseRFC3339(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
