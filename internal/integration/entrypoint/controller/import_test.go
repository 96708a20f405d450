package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestImportController_StatusCodes(t *testing.T) {
	c := &ImportController{}

	tests := []struct {
		code domainerror.IngestionErrorCode
		want int
	}{
		{domainerror.ErrCodeMissingFile, http.StatusBadRequest},
		{domainerror.ErrCodeUnsupportedFileType, http.StatusUnsupportedMediaType},
		{domainerror.ErrCodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{domainerror.ErrCodeExtractionFailed, http.StatusUnprocessableEntity},
		{domainerror.ErrCodeExtractorUnavailable, http.StatusServiceUnavailable},
		{domainerror.ErrCodeIngestionPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, c.getStatusCodeForIngestionError(tt.code))
		})
	}
}

func TestTransactionController_StatusCodes(t *testing.T) {
	c := &TransactionController{}

	assert.Equal(t, http.StatusNotFound, c.getStatusCodeForTransactionError(domainerror.ErrCodeTransactionNotFound))
	assert.Equal(t, http.StatusBadRequest, c.getStatusCodeForTransactionError(domainerror.ErrCodeInvalidTransactionKind))
	assert.Equal(t, http.StatusBadRequest, c.getStatusCodeForTransactionError(domainerror.ErrCodeInvalidDateFilter))
	assert.Equal(t, http.StatusBadRequest, c.getStatusCodeForTransactionError(domainerror.ErrCodeTooManyTransactions))
	assert.Equal(t, http.StatusInternalServerError, c.getStatusCodeForTransactionError(domainerror.ErrCodeTransactionPersistence))
}
