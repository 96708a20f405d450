package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/ingestion"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// uploadField is the multipart form field carrying the file.
const uploadField = "file"

// ImportController handles statement and receipt uploads.
type ImportController struct {
	documentUseCase *ingestion.ImportDocumentUseCase
	imageUseCase    *ingestion.ImportImageUseCase
	maxBytes        int64
}

// NewImportController creates a new import controller instance.
func NewImportController(
	documentUseCase *ingestion.ImportDocumentUseCase,
	imageUseCase *ingestion.ImportImageUseCase,
	maxBytes int64,
) *ImportController {
	return &ImportController{
		documentUseCase: documentUseCase,
		imageUseCase:    imageUseCase,
		maxBytes:        maxBytes,
	}
}

// ImportDocument handles POST /transactions/import-pdf requests.
func (c *ImportController) ImportDocument(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	file, err := c.readUpload(ctx)
	if err != nil {
		c.handleIngestionError(ctx, err)
		return
	}

	email := middleware.OwnerEmailFromContext(ctx)
	output, err := c.documentUseCase.Execute(ctx.Request.Context(), ingestion.ImportDocumentInput{
		OwnerID:    ownerID,
		OwnerEmail: email,
		File:       file,
	})
	if err != nil {
		c.handleIngestionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToImportReportResponse(output.Report))
}

// ImportReceipt handles POST /transactions/receipt requests.
func (c *ImportController) ImportReceipt(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	file, err := c.readUpload(ctx)
	if err != nil {
		c.handleIngestionError(ctx, err)
		return
	}

	output, err := c.imageUseCase.Execute(ctx.Request.Context(), ingestion.ImportImageInput{
		OwnerID: ownerID,
		File:    file,
	})
	if err != nil {
		c.handleIngestionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ReceiptResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
	})
}

// readUpload reads the multipart file. A missing field yields an empty file, which
// the use case rejects. At most maxBytes+1 bytes are read so oversize uploads stay detectable.
func (c *ImportController) readUpload(ctx *gin.Context) (adapter.UploadedFile, error) {
	header, err := ctx.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return adapter.UploadedFile{}, nil
		}
		return adapter.UploadedFile{}, domainerror.NewIngestionError(
			domainerror.ErrCodeMissingFile,
			domainerror.ErrMissingFile.Error(),
			err,
		)
	}

	if c.maxBytes > 0 && header.Size > c.maxBytes {
		return adapter.UploadedFile{}, domainerror.NewIngestionError(
			domainerror.ErrCodeFileTooLarge,
			domainerror.ErrFileTooLarge.Error(),
			nil,
		)
	}

	f, err := header.Open()
	if err != nil {
		return adapter.UploadedFile{}, err
	}
	defer f.Close()

	var reader io.Reader = f
	if c.maxBytes > 0 {
		reader = io.LimitReader(f, c.maxBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return adapter.UploadedFile{}, err
	}

	return adapter.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// handleIngestionError handles ingestion errors and returns appropriate HTTP responses.
func (c *ImportController) handleIngestionError(ctx *gin.Context, err error) {
	var ingErr *domainerror.IngestionError
	if errors.As(err, &ingErr) {
		ctx.JSON(c.getStatusCodeForIngestionError(ingErr.Code), dto.ErrorResponse{
			Error: ingErr.Message,
			Code:  string(ingErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForIngestionError maps ingestion error codes to HTTP status codes.
func (c *ImportController) getStatusCodeForIngestionError(code domainerror.IngestionErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingFile:
		return http.StatusBadRequest
	case domainerror.ErrCodeUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case domainerror.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeExtractionFailed:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeExtractorUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
