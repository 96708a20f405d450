package adapter

import "context"

// UploadedFile is a file received from a client, held fully in memory.
type UploadedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// TextExtractor turns an uploaded document or image into plain text.
type TextExtractor interface {
	// Extract returns the text content of the file.
	Extract(ctx context.Context, file UploadedFile) (string, error)
}
