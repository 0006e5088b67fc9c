//go:generate go run go.uber.org/mock/mockgen -source=document_service.go -destination=../mocks/mock_document_service.go -package=mocks
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/samber/lo"

	"med-lab/ai"
	"med-lab/domain/document"
	"med-lab/domain/imaging"
	"med-lab/domain/mimetypes"
	"med-lab/errors"
	"med-lab/repositories"
)

// defaultTopK is how many retrieved chunks feed an answer when the caller
// does not say otherwise.
const defaultTopK = 3

type IDocumentService interface {
	Ingest(ctx context.Context, data []byte, filename string) (uuid.UUID, int, error)
	Analyze(data []byte, filename string) imaging.Report
	ListDocuments() ([]string, error)
	DeleteDocument(source string) (int, error)
	Search(ctx context.Context, query, source string, offset int) ([]document.Chunk, uint64, error)
	RetrieveContext(ctx context.Context, question string, topK int) ([]document.Chunk, string, error)
}

// DocumentService turns uploads into stored, searchable chunks and serves
// retrieval for the chat flow. Images go through the medical classifier and
// are stored as a single description chunk; text and PDFs are split into
// overlapping chunks. Every chunk is embedded at ingestion time.
type DocumentService struct {
	classifier *imaging.Classifier
	splitter   *document.Splitter
	embedder   ai.IEmbedder
	chunks     repositories.IChunkRepository
	log        *slog.Logger
}

func NewDocumentService(classifier *imaging.Classifier, splitter *document.Splitter,
	embedder ai.IEmbedder, chunks repositories.IChunkRepository, log *slog.Logger) *DocumentService {
	return &DocumentService{
		classifier: classifier,
		splitter:   splitter,
		embedder:   embedder,
		chunks:     chunks,
		log:        log,
	}
}

// Ingest processes one uploaded file and persists its chunks. It returns
// the ID of the first stored chunk and the number of chunks written.
// The route is decided by sniffing the content, not by trusting the
// filename; the one exception is DICOM, whose magic sits at offset 128
// and is checked together with the medical file extensions.
func (s *DocumentService) Ingest(ctx context.Context, data []byte, filename string) (uuid.UUID, int, error) {
	if len(data) == 0 {
		return uuid.Nil, 0, fmt.Errorf("%s: %w", filename, errors.ErrEmptyDocument)
	}

	mime := mimetypes.Detect(data)

	var chunks []document.Chunk
	var err error
	switch {
	case mimetypes.IsImage(mime) || imaging.DetectDICOM(data, filename):
		chunks, err = s.imageChunks(ctx, data, filename)
	case mimetypes.IsPDF(mime):
		chunks, err = s.pdfChunks(ctx, data, filename)
	case mimetypes.IsText(mime):
		chunks, err = s.textChunks(ctx, data, filename)
	default:
		return uuid.Nil, 0, fmt.Errorf("%w: %s", errors.ErrUnsupportedContent, mime)
	}
	if err != nil {
		return uuid.Nil, 0, err
	}
	if len(chunks) == 0 {
		return uuid.Nil, 0, fmt.Errorf("%s: %w", filename, errors.ErrEmptyDocument)
	}

	if err := s.chunks.StoreBatch(chunks); err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to store chunks of %s: %w", filename, err)
	}
	if err := s.chunks.Flush(); err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to index chunks of %s: %w", filename, err)
	}

	s.log.Info("Document ingested",
		"source", filename,
		"mime", string(mime),
		"chunks", len(chunks))
	return chunks[0].ID, len(chunks), nil
}

// Analyze classifies an image without storing anything. It never fails:
// undecodable bytes come back as the fallback analysis.
func (s *DocumentService) Analyze(data []byte, filename string) imaging.Report {
	return s.classifier.Report(data, filename)
}

func (s *DocumentService) ListDocuments() ([]string, error) {
	return s.chunks.ListSources()
}

// DeleteDocument removes every chunk of a stored document and returns how
// many were deleted.
func (s *DocumentService) DeleteDocument(source string) (int, error) {
	deleted, err := s.chunks.DeleteBySource(source)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", source, err)
	}
	if deleted == 0 {
		return 0, fmt.Errorf("%s: %w", source, errors.ErrDocumentNotFound)
	}
	return deleted, nil
}

func (s *DocumentService) Search(ctx context.Context, query, source string, offset int) ([]document.Chunk, uint64, error) {
	return s.chunks.SearchPaginated(ctx, query, source, offset)
}

// RetrieveContext finds the chunks most relevant to a question. Full-text
// hits are re-ranked by cosine similarity between the question embedding
// and the embeddings stored at ingestion time, then cut to topK. The
// second return value is the hits rendered as numbered context blocks.
func (s *DocumentService) RetrieveContext(ctx context.Context, question string, topK int) ([]document.Chunk, string, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	chunks, _, err := s.chunks.SearchPaginated(ctx, question, "", 0)
	if err != nil {
		return nil, "", fmt.Errorf("failed to search chunks: %w", err)
	}

	chunks = lo.Slice(s.rerank(ctx, question, chunks), 0, topK)
	return chunks, formatContext(chunks), nil
}

func (s *DocumentService) rerank(ctx context.Context, question string, chunks []document.Chunk) []document.Chunk {
	queryVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		s.log.Warn("Question embedding failed, keeping index order", "error", err)
		return chunks
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		return ai.Cosine(queryVector, chunks[i].Embedding) > ai.Cosine(queryVector, chunks[j].Embedding)
	})
	return chunks
}

// formatContext renders retrieved chunks the way they are shown to the
// user in fallback answers: one numbered block per chunk, with the source
// document and page when known.
func formatContext(chunks []document.Chunk) string {
	blocks := lo.Map(chunks, func(chunk document.Chunk, i int) string {
		pageInfo := ""
		if page, ok := chunk.Metadata[document.MetaPage]; ok {
			pageInfo = fmt.Sprintf(" (Page %s)", page)
		}
		return fmt.Sprintf("[Document %d: %s%s]\n%s\n", i+1, chunk.Source, pageInfo, chunk.Content)
	})
	return strings.Join(blocks, "\n")
}

// imageChunks runs the medical image classifier and wraps the resulting
// description as a single chunk. The full analysis rides along in the
// metadata so downstream consumers can reread the scores without the
// original bytes. The embedding is computed from the medical context
// text, not from the description shown to users.
func (s *DocumentService) imageChunks(ctx context.Context, data []byte, filename string) ([]document.Chunk, error) {
	analysis := s.classifier.Analyze(data, filename)
	description := s.classifier.Describe(&analysis)

	info, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis of %s: %w", filename, err)
	}

	chunk := document.Chunk{
		ID:          uuid.New(),
		Source:      filename,
		ContentType: document.ContentImage,
		Content:     description,
		Index:       0,
		Metadata: map[string]string{
			document.MetaMedicalContext: "true",
			document.MetaIsDICOM:        strconv.FormatBool(analysis.IsDICOM),
			document.MetaMedicalType:    string(analysis.MedicalType),
			document.MetaImageInfo:      string(info),
		},
		CreatedAt: time.Now().UTC(),
	}
	s.embed(ctx, &chunk, ai.BuildEmbeddingContext(analysis))
	return []document.Chunk{chunk}, nil
}

// textChunks splits plain text into overlapping chunks. Each chunk records
// its position, the total count, and the detected language.
func (s *DocumentService) textChunks(ctx context.Context, data []byte, filename string) ([]document.Chunk, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid utf-8", errors.ErrUnsupportedContent, filename)
	}
	parts := s.splitter.Split(string(data))

	chunks := make([]document.Chunk, 0, len(parts))
	for i, part := range parts {
		chunk := s.newTextChunk(filename, i, part, map[string]string{
			document.MetaChunkNumber: strconv.Itoa(i + 1),
			document.MetaTotalChunks: strconv.Itoa(len(parts)),
		})
		s.embed(ctx, &chunk, part)
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// pdfChunks extracts text page by page and splits each page on its own,
// so every chunk can point back to the page it came from. Pages without
// extractable text are skipped.
func (s *DocumentService) pdfChunks(ctx context.Context, data []byte, filename string) ([]document.Chunk, error) {
	pages, err := extractPDFPages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf %s: %w", filename, err)
	}

	var chunks []document.Chunk
	index := 0
	for pageNum, text := range pages {
		parts := s.splitter.Split(text)
		for i, part := range parts {
			chunk := s.newTextChunk(filename, index, part, map[string]string{
				document.MetaPage:        strconv.Itoa(pageNum + 1),
				document.MetaChunkNumber: strconv.Itoa(i + 1),
				document.MetaTotalChunks: strconv.Itoa(len(parts)),
			})
			s.embed(ctx, &chunk, part)
			chunks = append(chunks, chunk)
			index++
		}
	}
	return chunks, nil
}

func (s *DocumentService) newTextChunk(source string, index int, content string, metadata map[string]string) document.Chunk {
	info := whatlanggo.Detect(content)
	metadata[document.MetaLanguage] = info.Lang.Iso6391()
	return document.Chunk{
		ID:          uuid.New(),
		Source:      source,
		ContentType: document.ContentText,
		Content:     content,
		Index:       index,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
}

// embed attaches the embedding to the chunk. A failed embedding is logged
// and skipped: the chunk stays retrievable through full-text search, it
// just cannot take part in cosine re-ranking.
func (s *DocumentService) embed(ctx context.Context, chunk *document.Chunk, text string) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.log.Warn("Embedding failed, storing chunk without vector",
			"source", chunk.Source,
			"error", err)
		return
	}
	chunk.Embedding = vector
}

// extractPDFPages returns the plain text of every page, in order. Pages
// that fail to extract come back empty instead of sinking the document.
func extractPDFPages(data []byte) (pages []string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	pages = make([]string, 0, reader.NumPage())
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
