package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"med-lab/domain/document"
	"med-lab/internal/logs"
)

func initTest(t *testing.T) (*slog.Logger, *badger.DB, *bluge.Writer) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	return logs.GetLoggerFromLevel(slog.LevelError), db, writer
}

func textChunk(source string, index int, content string) document.Chunk {
	return document.Chunk{
		ID:          uuid.New(),
		Source:      source,
		ContentType: document.ContentText,
		Content:     content,
		Index:       index,
		Metadata:    map[string]string{document.MetaChunkNumber: fmt.Sprintf("%d", index+1)},
		CreatedAt:   time.Now().UTC(),
	}
}

func TestChunkRepository_Store_And_Search(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	// Given: A chunk from a radiology report
	chunk := textChunk("thorax_report.pdf", 0,
		"The chest radiograph shows a small left-sided pneumothorax without mediastinal shift")

	// When: Storing the chunk
	req.NoError(repo.Store(chunk))

	// Then: It should be retrievable from BadgerDB
	fetched, err := repo.FetchByID(chunk.Source, chunk.ID)
	req.NoError(err)
	req.Equal(chunk.ID, fetched.ID)
	req.Equal(chunk.Content, fetched.Content)
	req.Equal(chunk.Metadata, fetched.Metadata)

	// And: It should be searchable in Bluge after flush
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	results, total, err := repo.SearchPaginated(ctx, "pneumothorax", "", 0)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(results, 1)
	req.Equal(chunk.ID, results[0].ID)
}

func TestChunkRepository_SearchPaginated_CaseInsensitive(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	req.NoError(repo.Store(textChunk("cardio_notes.txt", 0,
		"Echocardiogram Findings Suggest Mild Ventricular Hypertrophy")))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	testCases := []string{"hypertrophy", "HYPERTROPHY", "Hypertrophy", "HyPeRtRoPhY"}

	for _, query := range testCases {
		results, total, err := repo.SearchPaginated(ctx, query, "", 0)

		req.NoError(err, "Query: %s", query)
		req.Equal(uint64(1), total, "Query: %s", query)
		req.Len(results, 1, "Query: %s", query)
	}
}

func TestChunkRepository_SearchPaginated_SourceIsolation(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	// Given: The same condition mentioned in two different documents
	req.NoError(repo.Store(textChunk("patient_a.pdf", 0, "History of asthma since childhood")))
	req.NoError(repo.Store(textChunk("patient_b.pdf", 0, "No evidence of asthma on examination")))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// When: Searching restricted to one source
	results, total, err := repo.SearchPaginated(ctx, "asthma", "patient_a.pdf", 0)

	// Then: Only that document's chunk matches
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(results, 1)
	req.Equal("patient_a.pdf", results[0].Source)
	req.Contains(results[0].Content, "childhood")

	// And: Unrestricted search sees both
	_, total, err = repo.SearchPaginated(ctx, "asthma", "", 0)
	req.NoError(err)
	req.Equal(uint64(2), total)
}

func TestChunkRepository_SearchPaginated_Pagination(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 3)
	source := "long_discharge_summary.pdf"

	// Given: 7 chunks sharing a keyword
	for i := 0; i < 7; i++ {
		req.NoError(repo.Store(textChunk(source, i,
			fmt.Sprintf("Section %d mentions the prescribed medication schedule", i))))
	}
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// When: Fetching page 1 (offset 0)
	page1, total, err := repo.SearchPaginated(ctx, "medication", source, 0)
	req.NoError(err)
	req.Equal(uint64(7), total, "Total should be 7")
	req.Len(page1, 3, "Page 1 should have 3 results (page size)")

	// When: Fetching page 2 (offset 3)
	page2, total, err := repo.SearchPaginated(ctx, "medication", source, 3)
	req.NoError(err)
	req.Equal(uint64(7), total)
	req.Len(page2, 3)

	// When: Fetching page 3 (offset 6)
	page3, total, err := repo.SearchPaginated(ctx, "medication", source, 6)
	req.NoError(err)
	req.Equal(uint64(7), total)
	req.Len(page3, 1, "Page 3 should have 1 result (remainder)")

	// Then: No overlap between pages
	all := append(extractChunkIDs(page1), extractChunkIDs(page2)...)
	all = append(all, extractChunkIDs(page3)...)
	req.Len(all, 7)
	req.True(allUnique(all))
}

func TestChunkRepository_SearchPaginated_NoResults(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	results, total, err := repo.SearchPaginated(ctx, "nonexistent", "", 0)

	req.NoError(err)
	req.Equal(uint64(0), total)
	req.Empty(results)
}

func TestChunkRepository_StoreBatch(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)
	source := "lab_results.pdf"

	var chunks []document.Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, textChunk(source, i,
			fmt.Sprintf("Panel %d shows glucose within reference range", i)))
	}

	// When: Storing all chunks at once
	req.NoError(repo.StoreBatch(chunks))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// Then: All are searchable
	_, total, err := repo.SearchPaginated(ctx, "glucose", source, 0)
	req.NoError(err)
	req.Equal(uint64(5), total)

	// And: Scanning returns them in reading order
	scanned, cursor, err := repo.ScanBySource(source, nil)
	req.NoError(err)
	req.Len(scanned, 5)
	req.Nil(cursor)
	for i, chunk := range scanned {
		req.Equal(i, chunk.Index)
	}
}

func TestChunkRepository_ScanBySource_Pagination(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(2), 10)
	source := "guidelines.pdf"

	for i := 0; i < 5; i++ {
		req.NoError(repo.Store(textChunk(source, i, fmt.Sprintf("Recommendation %d", i))))
	}

	// When: Fetching all pages
	page1, cursor1, err := repo.ScanBySource(source, nil)
	req.NoError(err)
	req.Len(page1, 2)
	req.NotNil(cursor1)
	req.Equal(0, page1[0].Index)
	req.Equal(1, page1[1].Index)

	page2, cursor2, err := repo.ScanBySource(source, cursor1)
	req.NoError(err)
	req.Len(page2, 2)
	req.NotNil(cursor2)
	req.Equal(2, page2[0].Index)

	page3, cursor3, err := repo.ScanBySource(source, cursor2)
	req.NoError(err)
	req.Len(page3, 1)
	req.Nil(cursor3, "Last page should have nil cursor")

	// Then: No duplicates across pages
	all := append(extractChunkIDs(page1), extractChunkIDs(page2)...)
	all = append(all, extractChunkIDs(page3)...)
	req.Len(all, 5)
	req.True(allUnique(all))
}

func TestChunkRepository_ScanBySource_EmptySource(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	results, cursor, err := repo.ScanBySource("never_uploaded.pdf", nil)

	req.NoError(err)
	req.Empty(results)
	req.Nil(cursor)
}

func TestChunkRepository_FetchByID_NotFound(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	_, err := repo.FetchByID("report.pdf", uuid.New())

	req.Error(err)
	req.Contains(err.Error(), "not found")
}

func TestChunkRepository_DeleteBySource(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	for i := 0; i < 3; i++ {
		req.NoError(repo.Store(textChunk("old_scan.pdf", i, "Historic imaging findings archived")))
	}
	req.NoError(repo.Store(textChunk("current_scan.pdf", 0, "Current imaging findings under review")))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// When: Deleting one document
	deleted, err := repo.DeleteBySource("old_scan.pdf")
	req.NoError(err)
	req.Equal(3, deleted)
	time.Sleep(50 * time.Millisecond)

	// Then: Gone from both stores
	scanned, _, err := repo.ScanBySource("old_scan.pdf", nil)
	req.NoError(err)
	req.Empty(scanned)

	results, total, err := repo.SearchPaginated(ctx, "findings", "", 0)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(results, 1)
	req.Equal("current_scan.pdf", results[0].Source)
}

func TestChunkRepository_ListSources(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	req.NoError(repo.Store(textChunk("alpha.pdf", 0, "First document")))
	req.NoError(repo.Store(textChunk("alpha.pdf", 1, "First document continued")))
	req.NoError(repo.Store(textChunk("beta.txt", 0, "Second document")))

	sources, err := repo.ListSources()
	req.NoError(err)
	req.ElementsMatch([]string{"alpha.pdf", "beta.txt"}, sources)
}

func TestChunkRepository_Update_ReplacesContent(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)
	ctx := context.Background()

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	chunk := textChunk("revised_report.pdf", 0, "Preliminary impression of benign nodule")
	req.NoError(repo.Store(chunk))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// When: Re-storing the same chunk with corrected content
	chunk.Content = "Final impression of calcified granuloma"
	req.NoError(repo.Store(chunk))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// Then: Only the corrected content matches
	_, total, err := repo.SearchPaginated(ctx, "granuloma", "", 0)
	req.NoError(err)
	req.Equal(uint64(1), total)

	_, total, err = repo.SearchPaginated(ctx, "benign", "", 0)
	req.NoError(err)
	req.Equal(uint64(0), total)

	fetched, err := repo.FetchByID(chunk.Source, chunk.ID)
	req.NoError(err)
	req.Contains(fetched.Content, "granuloma")
}

func TestChunkRepository_Flush_Idempotent(t *testing.T) {
	req := require.New(t)
	log, db, writer := initTest(t)

	repo := NewChunkRepository(db, writer, log, lo.ToPtr(50), 10)

	req.NoError(repo.Flush())
	req.NoError(repo.Flush())
	req.NoError(repo.Flush())
}

func extractChunkIDs(chunks []document.Chunk) []uuid.UUID {
	ids := make([]uuid.UUID, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID
	}
	return ids
}

func allUnique(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
