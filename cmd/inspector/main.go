package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"med-lab/domain/search"
	"med-lab/internal"
	"med-lab/internal/logs"
	"med-lab/repositories"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	BlugeFilepath  string `envconfig:"BLUGE_FILEPATH" default:"./data/bluge"`
}

func main() {
	searchInput := flag.String("search", "", `Full text search, e.g. "chest opacity --source report.pdf --limit 5"`)
	prefix := flag.String("prefix", "chunk:", "Key prefix to scan")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if *searchInput != "" {
		runSearch(config, *searchInput)
		return
	}
	runScan(config, *prefix)
}

// runScan lists raw store entries under a key prefix.
func runScan(config Config, prefix string) {
	// BypassLockGuard allows opening while the API server holds the lock
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	table := newTable([]string{"Key", "Type", "Timestamp", "Entity ID", "Namespace", "Detail"})

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				row := internal.DefaultMapper(string(item.Key()), v)
				table.Append([]string{row.Key, row.Type, row.Timestamp, row.EntityID, row.Namespace, row.Detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" STORE SCAN " + prefix + " "))
	table.Render()
}

// runSearch queries the full-text index the way the API does. It opens
// the Bluge writer, so the API server must be stopped first.
func runSearch(config Config, input string) {
	query := search.NewQuery(input)
	if query.Terms == "" {
		log.Fatal("No search terms provided")
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		log.Fatalf("Failed to open index: %v", err)
	}
	defer writer.Close()

	chunks := repositories.NewChunkRepository(db, writer, logs.GetLoggerFromString("error"), nil, query.Limit)

	results, total, err := chunks.SearchPaginated(context.Background(), query.Terms, query.Source, 0)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	table := newTable([]string{"Entity ID", "Source", "Type", "Chunk", "Content"})
	for _, chunk := range results {
		id := chunk.ID.String()
		if len(id) > 8 {
			id = id[:8]
		}
		table.Append([]string{
			id,
			chunk.Source,
			string(chunk.ContentType),
			fmt.Sprintf("%d", chunk.Index),
			excerpt(chunk.Content, 80),
		})
	}

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" SEARCH " + query.Terms + " "))
	table.Render()
	color.Green.Printf("%d match(es), showing %d\n", total, len(results))
}

func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// excerpt flattens newlines and truncates content for one table cell.
func excerpt(content string, limit int) string {
	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
