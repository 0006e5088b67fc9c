package search

import (
	"strconv"
	"strings"
)

// Query represents the structured parameters for a retrieval request.
// It decouples the raw user input from the actual index engine requirements.
type Query struct {
	RawInput string // The original text from the user
	Terms    string // The actual text to search in Bluge
	Source   string // Restrict matches to one ingested document
	Limit    int    // Pagination: number of results
}

// NewQuery parses a raw string to extract command-line style arguments.
// Example: chest opacity --source thorax_study.pdf --limit 5
func NewQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10, // Default limit
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		// Handle flags like --source report.pdf or --limit 5
		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "source":
				query.Source = val
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		// If it's not a flag, it's a search term
		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, part)
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
