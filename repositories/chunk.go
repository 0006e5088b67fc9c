//go:generate go run go.uber.org/mock/mockgen -source=chunk.go -destination=../mocks/mock_chunk_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/index"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"med-lab/domain/document"
)

// maxPendingIndexOps bounds the buffered index batch so a very large
// ingest cannot hold the whole index delta in memory before Flush.
const maxPendingIndexOps = 512

type IChunkRepository interface {
	Store(chunk document.Chunk) error
	StoreBatch(chunks []document.Chunk) error
	Flush() error
	FetchByID(source string, id uuid.UUID) (document.Chunk, error)
	SearchPaginated(ctx context.Context, query string, source string, offset int) ([]document.Chunk, uint64, error)
	ScanBySource(source string, cursor *string) ([]document.Chunk, *string, error)
	ListSources() ([]string, error)
	DeleteBySource(source string) (int, error)
}

// ChunkRepository persists document chunks in BadgerDB (source of truth)
// and mirrors their text into a Bluge index for full-text retrieval.
// The Bluge document _id is the exact Badger key, so a search hit
// hydrates with a single point lookup.
type ChunkRepository struct {
	db       *badger.DB
	writer   *bluge.Writer
	log      *slog.Logger
	limit    *int
	pageSize int

	mu      sync.Mutex
	batch   *index.Batch
	pending int
}

// NewChunkRepository wires both stores together. The limit caps one page
// of ScanBySource; pageSize caps one page of SearchPaginated.
func NewChunkRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger, limit *int, pageSize int) *ChunkRepository {
	return &ChunkRepository{
		db:       db,
		writer:   writer,
		log:      log,
		limit:    limit,
		pageSize: lo.Ternary(pageSize > 0, pageSize, 10),
		batch:    bluge.NewBatch(),
	}
}

// chunkKey formats the Badger key as "chunk:{source}:{index_padded}:{uuid}" to:
//  1. Group all chunks of one document under a single prefix.
//  2. Keep chunks in reading order using 5-digit zero padding (lexicographical order).
//  3. Prevent collisions via the chunk UUID suffix.
func chunkKey(chunk document.Chunk) string {
	return fmt.Sprintf("chunk:%s:%05d:%s", chunk.Source, chunk.Index, chunk.ID)
}

// Store persists a chunk in BadgerDB and queues it for indexing.
// The Bluge side is buffered; call Flush to make recent writes searchable.
func (c *ChunkRepository) Store(chunk document.Chunk) error {
	key := chunkKey(chunk)
	bytes, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
	if err != nil {
		return err
	}
	return c.enqueueIndex(key, chunk)
}

// StoreBatch persists many chunks in one Badger write batch, then queues
// them all for indexing. Used by the ingestion pipeline where a single
// document can produce hundreds of chunks.
func (c *ChunkRepository) StoreBatch(chunks []document.Chunk) error {
	wb := c.db.NewWriteBatch()
	defer wb.Cancel()

	for _, chunk := range chunks {
		bytes, err := json.Marshal(chunk)
		if err != nil {
			return err
		}
		if err = wb.Set([]byte(chunkKey(chunk)), bytes); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}

	for _, chunk := range chunks {
		if err := c.enqueueIndex(chunkKey(chunk), chunk); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChunkRepository) enqueueIndex(key string, chunk document.Chunk) error {
	doc := bluge.NewDocument(key)
	doc.AddField(bluge.NewTextField("content", chunk.Content).StoreValue())
	doc.AddField(bluge.NewKeywordField("source", chunk.Source))
	doc.AddField(bluge.NewKeywordField("content_type", string(chunk.ContentType)))
	doc.AddField(bluge.NewNumericField("index", float64(chunk.Index)))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch.Update(doc.ID(), doc)
	c.pending++
	if c.pending >= maxPendingIndexOps {
		return c.flushLocked()
	}
	return nil
}

// Flush commits any buffered index operations. Safe to call repeatedly;
// a flush with nothing pending is a no-op.
func (c *ChunkRepository) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

func (c *ChunkRepository) flushLocked() error {
	if c.pending == 0 {
		return nil
	}
	if err := c.writer.Batch(c.batch); err != nil {
		return fmt.Errorf("failed to commit index batch: %w", err)
	}
	c.log.Debug(fmt.Sprintf("Indexed %d chunk(s)", c.pending))
	c.batch = bluge.NewBatch()
	c.pending = 0
	return nil
}

// FetchByID retrieves one chunk by its source and UUID using a prefix scan
// over the document's keyspace.
func (c *ChunkRepository) FetchByID(source string, id uuid.UUID) (document.Chunk, error) {
	var chunk document.Chunk
	found := false
	prefix := []byte(fmt.Sprintf("chunk:%s:", source))
	suffix := ":" + id.String()

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if key[len(key)-len(suffix):] != suffix {
				continue
			}
			found = true
			return item.Value(func(value []byte) error {
				return json.Unmarshal(value, &chunk)
			})
		}
		return nil
	})
	if err != nil {
		return document.Chunk{}, err
	}
	if !found {
		return document.Chunk{}, fmt.Errorf("chunk %s not found in source %s", id, source)
	}
	return chunk, nil
}

// SearchPaginated runs a full-text match over chunk content, optionally
// restricted to a single source document. It returns one page of chunks
// plus the total hit count so callers can paginate.
func (c *ChunkRepository) SearchPaginated(ctx context.Context, query string, source string, offset int) ([]document.Chunk, uint64, error) {
	reader, err := c.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open index reader: %w", err)
	}
	defer reader.Close()

	match := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query).SetField("content"))
	if source != "" {
		match.AddMust(bluge.NewTermQuery(source).SetField("source"))
	}

	request := bluge.NewTopNSearch(c.pageSize, match).
		SetFrom(offset).
		WithStandardAggregations()

	dmi, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search failed: %w", err)
	}

	var keys []string
	m, err := dmi.Next()
	for err == nil && m != nil {
		visitErr := m.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				keys = append(keys, string(value))
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		m, err = dmi.Next()
	}
	if err != nil {
		return nil, 0, err
	}

	chunks, err := c.hydrate(keys)
	if err != nil {
		return nil, 0, err
	}
	return chunks, dmi.Aggregations().Count(), nil
}

// hydrate resolves index hits back to full chunks via direct Badger lookups.
// A key present in the index but missing from Badger is skipped; this can
// happen briefly while a document is being deleted.
func (c *ChunkRepository) hydrate(keys []string) ([]document.Chunk, error) {
	var chunks []document.Chunk
	err := c.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				c.log.Warn(fmt.Sprintf("Indexed chunk without storage entry : %s", key))
				continue
			}
			if err != nil {
				return err
			}
			var chunk document.Chunk
			err = item.Value(func(value []byte) error {
				return json.Unmarshal(value, &chunk)
			})
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	})
	return chunks, err
}

// ScanBySource pages through all chunks of a document in reading order.
// Thanks to the padded index in the key, chunks come back naturally sorted.
// A nil returned cursor means the last page was reached.
func (c *ChunkRepository) ScanBySource(source string, cursor *string) ([]document.Chunk, *string, error) {
	var chunks []document.Chunk
	var lastKey string
	more := false

	err := c.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("chunk:%s:", source)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = prefix
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if c.limit != nil && len(chunks) == *c.limit {
				more = true
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				var chunk document.Chunk
				if err := json.Unmarshal(value, &chunk); err != nil {
					return err
				}
				chunks = append(chunks, chunk)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !more {
		return chunks, nil, nil
	}
	return chunks, &lastKey, nil
}

// ListSources returns the distinct source documents currently stored,
// using a keys-only iteration.
func (c *ChunkRepository) ListSources() ([]string, error) {
	seen := make(map[string]bool)
	var sources []string

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte("chunk:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			// Key layout is chunk:{source}:{index}:{uuid}; the index part
			// never contains a colon, the uuid part never does either,
			// so the source is everything between the first colon and
			// the third-from-last colon group.
			rest := key[len("chunk:"):]
			source := trimChunkSuffix(rest)
			if source == "" || seen[source] {
				continue
			}
			seen[source] = true
			sources = append(sources, source)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

// trimChunkSuffix strips ":{index_padded}:{uuid}" from the key remainder,
// leaving the source name. Sources may themselves contain colons, so the
// split walks from the right.
func trimChunkSuffix(rest string) string {
	// uuid is 36 chars, padded index is 5, plus two separators
	const suffixLen = 36 + 1 + 5 + 1
	if len(rest) <= suffixLen {
		return ""
	}
	return rest[:len(rest)-suffixLen]
}

// DeleteBySource removes every chunk of a document from both Badger and
// the index, returning how many chunks were dropped.
func (c *ChunkRepository) DeleteBySource(source string) (int, error) {
	var keys [][]byte
	prefix := []byte(fmt.Sprintf("chunk:%s:", source))

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	wb := c.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err = wb.Delete(key); err != nil {
			return 0, err
		}
	}
	if err = wb.Flush(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	for _, key := range keys {
		c.batch.Delete(bluge.Identifier(string(key)))
		c.pending++
	}
	err = c.flushLocked()
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}

	c.log.Debug(fmt.Sprintf("Deleted %d chunk(s) for source %s", len(keys), source))
	return len(keys), nil
}
