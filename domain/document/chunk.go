// Package document models ingested medical documents as retrievable chunks.
// A document is split into text chunks or wrapped as a single image chunk;
// chunks are immutable once built and carry their provenance in Metadata.
package document

import (
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
)

// Metadata keys shared by the ingestion pipeline and the retrieval layer.
const (
	MetaTotalChunks    = "total_chunks"
	MetaChunkNumber    = "chunk"
	MetaPage           = "page"
	MetaLanguage       = "language"
	MetaMedicalContext = "medical_context"
	MetaMedicalType    = "medical_type"
	MetaIsDICOM        = "is_dicom"
	MetaImageInfo      = "image_info"
)

// Chunk is one indexed unit of an ingested document. The Embedding is
// computed at ingestion time and persisted alongside the text so answers
// can re-rank full-text hits without re-embedding the corpus.
type Chunk struct {
	ID          uuid.UUID         `json:"id"`
	Source      string            `json:"source"`
	ContentType ContentType       `json:"content_type"`
	Content     string            `json:"content"`
	Index       int               `json:"index"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Embedding   []float64         `json:"embedding,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
