package imaging

import (
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

// filenameGroup maps a family of filename terms to the type they imply.
type filenameGroup struct {
	terms []string
	t     Type
}

// filenameGroups is scanned in order; the first group with a match wins.
// Explicit filenames are a strong, cheap signal and short-circuit content
// analysis entirely.
var filenameGroups = []filenameGroup{
	{[]string{"xray", "x-ray", "chest", "cxr"}, TypeChestXRay},
	{[]string{"ct", "computed_tomography"}, TypeCT},
	{[]string{"mri", "magnetic_resonance"}, TypeMR},
	{[]string{"ultrasound", "us", "echo"}, TypeUltrasound},
	{[]string{"mammo", "mammography"}, TypeMammography},
	{[]string{"dermato", "skin", "dermatology", "rash", "lesion"}, TypeDermatology},
	{[]string{"retina", "fundus", "ophthalmology", "eye"}, TypeRetinal},
	{[]string{"pathology", "histology", "microscopy", "biopsy"}, TypePathology},
	{[]string{"endoscopy", "endoscopic", "colonoscopy"}, TypeEndoscopy},
	{[]string{"lab", "blood", "test", "result"}, TypeLabResult},
	{[]string{"report", "discharge", "summary"}, TypeDocument},
}

// indicatorTerms are the medical terms reported back as filename
// indicators, in reporting order.
var indicatorTerms = []string{
	"xray", "x-ray", "chest", "cxr", "ct", "mri", "ultrasound", "us",
	"mammo", "mammography", "endoscopy", "dermato", "retina", "fundus",
	"pathology", "histology", "microscopy", "radiograph", "scan",
}

// Vocabulary matches medical terms inside uploaded filenames. A single
// Aho-Corasick automaton covers both the classification groups and the
// indicator terms, so one scan answers both questions.
type Vocabulary struct {
	machine *goahocorasick.Machine
}

func NewVocabulary() (*Vocabulary, error) {
	seen := make(map[string]bool)
	var patterns [][]rune
	add := func(term string) {
		if !seen[term] {
			seen[term] = true
			patterns = append(patterns, []rune(term))
		}
	}
	for _, g := range filenameGroups {
		for _, term := range g.terms {
			add(term)
		}
	}
	for _, term := range indicatorTerms {
		add(term)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Vocabulary{machine: m}, nil
}

// matchSet returns every vocabulary term occurring in name, matched
// case-insensitively as a literal substring.
func (v *Vocabulary) matchSet(name string) map[string]bool {
	content := []rune(strings.ToLower(name))
	if len(content) == 0 {
		return nil
	}
	found := make(map[string]bool)
	for _, term := range v.machine.MultiPatternSearch(content, false) {
		found[string(term.Word)] = true
	}
	return found
}

// TypeFromFilename resolves the filename override, if any.
func (v *Vocabulary) TypeFromFilename(name string) (Type, bool) {
	found := v.matchSet(name)
	if len(found) == 0 {
		return "", false
	}
	for _, g := range filenameGroups {
		for _, term := range g.terms {
			if found[term] {
				return g.t, true
			}
		}
	}
	return "", false
}

// Indicators lists the medical terms literally present in the filename,
// in reporting order. The result is never nil.
func (v *Vocabulary) Indicators(name string) []string {
	found := v.matchSet(name)
	indicators := []string{}
	for _, term := range indicatorTerms {
		if found[term] {
			indicators = append(indicators, term)
		}
	}
	return indicators
}
