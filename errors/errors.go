package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrDocumentNotFound   = fmt.Errorf("document not found")
	ErrEmptyDocument      = fmt.Errorf("document contains no extractable content")
	ErrUnsupportedContent = fmt.Errorf("unsupported content type")
	ErrInvalidChunking    = fmt.Errorf("chunk overlap must be smaller than chunk size")
	ErrEmptyQuestion      = fmt.Errorf("question is empty")
	ErrEmptyQuery         = fmt.Errorf("no query provided")
	ErrMissingFile        = fmt.Errorf("no file part in the request")
	ErrInvalidRequest     = fmt.Errorf("invalid request")
	ErrQueueFull          = fmt.Errorf("ingestion queue is full")
	ErrLLMNotConfigured   = fmt.Errorf("no language model configured")
)
