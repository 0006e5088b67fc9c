package chat

// Source points back at the stored document a retrieved chunk came from.
// Page is only set for chunks extracted from a paginated format.
type Source struct {
	Source string `json:"source"`
	Page   *int   `json:"page,omitempty"`
}

// Answer is the outcome of one AskCommand: the generated (or fallback)
// answer text plus the provenance of every chunk that informed it.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
