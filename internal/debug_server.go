package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

// maxInspectRows caps the listing; the page is a debugging aid, not an
// export.
const maxInspectRows = 500

type InspectRow struct {
	Key       string
	Type      string
	Timestamp string
	EntityID  string
	Namespace string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// DebugHandler serves a read-only inspection page over the raw Badger
// keyspace, next to a JSON stats endpoint. The router mounts it under
// /debug; entries are listed by key prefix, chunks by default.
func DebugHandler(db *badger.DB, mapper RowMapper, stats StatsProvider) http.Handler {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "chunk:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if stats != nil {
			data.Stats = stats()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)) && len(data.Items) < maxInspectRows; it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{}
		if stats != nil {
			payload = stats()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	})

	return mux
}

// DefaultMapper decodes the two production key layouts,
// "chunk:{source}:{index}:{uuid}" and "msg:{conversation}:{ts}:{uuid}".
// The namespace is parsed from the end so sources containing colons
// still split correctly.
func DefaultMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Namespace: "default",
		Detail:    strconv.Itoa(len(val)) + " bytes",
	}

	parts := strings.Split(key, ":")
	if len(parts) < 4 {
		return row
	}

	id := parts[len(parts)-1]
	if len(id) > 8 {
		id = id[:8]
	}
	middle := parts[len(parts)-2]
	namespace := strings.Join(parts[1:len(parts)-2], ":")

	switch parts[0] {
	case "chunk":
		row.Type = "CHUNK"
		row.Namespace = namespace
		row.EntityID = id
		if index, err := strconv.Atoi(middle); err == nil {
			row.Detail = fmt.Sprintf("chunk %d, %d bytes", index, len(val))
		}
	case "msg":
		row.Type = "MESSAGE"
		row.Namespace = namespace
		row.EntityID = id
		if tsNano, err := strconv.ParseInt(middle, 10, 64); err == nil {
			row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
		}
	}
	return row
}
