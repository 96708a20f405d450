// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// insertBatchSize is the number of rows per INSERT statement in InsertMany.
const insertBatchSize = 200

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// InsertMany stores all transactions inside one database transaction.
func (r *transactionRepository) InsertMany(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	models := model.TransactionsFromEntities(transactions)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, insertBatchSize).Error
	})
}

// FindByIDAndOwner retrieves a transaction by its ID, scoped to the owner.
func (r *transactionRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// DeleteByIDAndOwner permanently deletes a transaction owned by ownerID.
func (r *transactionRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Count returns the number of transactions matching the filter.
func (r *transactionRepository) Count(ctx context.Context, filter adapter.TransactionFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindPage returns one window of the filtered transactions, newest first.
func (r *transactionRepository) FindPage(ctx context.Context, filter adapter.TransactionFilter, skip, limit int) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	err := r.filtered(ctx, filter).
		Order("date DESC").
		Order("id DESC").
		Offset(skip).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}

// Stream walks the owner's transactions in primary key order, batchSize rows at a time.
func (r *transactionRepository) Stream(
	ctx context.Context,
	ownerID uuid.UUID,
	batchSize int,
	fn func(batch []*entity.Transaction) error,
) error {
	var models []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		FindInBatches(&models, batchSize, func(_ *gorm.DB, _ int) error {
			batch := make([]*entity.Transaction, len(models))
			for i := range models {
				batch[i] = models[i].ToEntity()
			}
			return fn(batch)
		})
	return result.Error
}

func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("owner_id = ?", filter.OwnerID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	return query
}
