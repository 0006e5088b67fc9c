package imaging

import (
	"sort"
	"strings"
)

// maxKeywords caps the generated keyword list.
const maxKeywords = 15

// baseTypeKeywords seed the list for each medical type with neutral terms
// that do not imply pathology.
var baseTypeKeywords = map[Type][]string{
	TypeChestXRay:     {"radiology", "pulmonary imaging", "cardiac imaging", "thoracic imaging", "respiratory system"},
	TypeCT:            {"radiology", "cross-sectional imaging", "diagnostic imaging", "CT imaging"},
	TypeMR:            {"radiology", "soft tissue imaging", "MRI imaging", "diagnostic imaging"},
	TypeUltrasound:    {"sonography", "real-time imaging", "diagnostic ultrasound", "medical imaging"},
	TypeMammography:   {"breast imaging", "women's health", "preventive screening"},
	TypeDermatology:   {"dermatology", "skin imaging", "skin documentation"},
	TypeRetinal:       {"ophthalmology", "eye examination", "retinal imaging", "vision assessment"},
	TypePathology:     {"pathology", "histology", "tissue analysis", "microscopy"},
	TypeEndoscopy:     {"gastroenterology", "internal examination", "endoscopic imaging"},
	TypeClinicalPhoto: {"clinical documentation", "medical photography"},
	TypeDocument:      {"clinical documentation", "medical record", "patient information"},
	TypeLabResult:     {"laboratory", "diagnostic testing", "clinical chemistry"},
}

var genericTypeKeywords = []string{"medical imaging", "clinical documentation"}

// Finding tags map to searchable pathology keywords. These only apply
// when the analyzer actually flagged findings, so routine images never
// pick up alarming terms.
var dermFindingKeywords = map[string][]string{
	"color_variation":         {"pigmentation changes", "color irregularity"},
	"hyperpigmentation_areas": {"hyperpigmentation", "dark spots"},
	"hypopigmentation_areas":  {"hypopigmentation", "light spots"},
	"defined_borders":         {"lesion borders", "skin lesion"},
	"texture_irregularity":    {"skin texture changes", "surface irregularity"},
	"potential_lesions":       {"skin lesion", "dermatological finding"},
	"redness_pattern":         {"redness pattern", "skin irritation"},
	"skin_tone_variation":     {"skin tone variation", "tonal irregularity"},
}

var radiologicalFindingKeywords = map[string][]string{
	"image_complexity":   {"complex imaging", "detailed examination"},
	"abnormal_density":   {"density changes", "radiological finding"},
	"structural_changes": {"anatomical changes", "structural abnormality"},
}

var clinicalFindingKeywords = map[string][]string{
	"visual_variation":   {"clinical variation", "visual changes"},
	"color_changes":      {"appearance changes", "clinical finding"},
	"structural_changes": {"anatomical variation", "clinical observation"},
}

// Keywords emitted for the routine baseline of each analyzed family.
var (
	dermNormalKeywords         = []string{"baseline skin documentation", "natural skin appearance", "skin documentation"}
	radiologicalNormalKeywords = []string{"routine imaging", "screening examination", "preventive care"}
	clinicalNormalKeywords     = []string{"routine documentation", "clinical photography", "medical record"}
)

var significanceKeywords = map[Significance][]string{
	SignificanceRoutine:            {"routine care", "documentation"},
	SignificanceRoutineSkin:        {"skin health", "routine dermatology"},
	SignificanceScreening:          {"preventive care", "health screening"},
	SignificanceMonitoring:         {"medical monitoring", "follow-up care"},
	SignificanceFollowUp:           {"clinical follow-up", "medical review"},
	SignificanceProfessionalReview: {"professional assessment", "clinical evaluation"},
	SignificancePathological:       {"diagnostic analysis", "pathological assessment"},
}

// Normal indicators become positive keywords so routine findings stay
// searchable without pathological vocabulary.
var normalIndicatorKeywords = map[string][]string{
	"uniform_coloration":      {"normal pigmentation", "natural skin appearance"},
	"consistent_pigmentation": {"baseline skin documentation", "consistent skin appearance"},
	"smooth_texture":          {"normal skin texture", "natural skin surface"},
	"normal_texture":          {"normal skin texture"},
	"no_obvious_lesions":      {"clear skin appearance", "no visible abnormalities"},
	"routine_imaging":         {"standard imaging", "routine examination"},
	"clinical_documentation":  {"medical documentation"},
}

var dicomKeywords = []string{"DICOM", "medical imaging standard", "digital imaging"}

// keywordPriorities ranks every keyword literal the generator can emit.
// Higher wins; missing entries rank 0. The dedup passes and the final
// sort all read from this one table, and the vocabulary coverage test
// fails when an emitting vocabulary gains a literal without a rank here.
// Beware the substring pass when ranking: a contained keyword survives
// only while it outranks its container.
var keywordPriorities = buildKeywordPriorities()

func buildKeywordPriorities() map[string]int {
	tiers := []struct {
		priority int
		terms    []string
	}{
		// Specific specialty and diagnostic terms.
		{5, []string{
			"dermatology", "radiology", "pathology", "ophthalmology",
			"gastroenterology", "sonography", "histology",
			"skin lesion", "chest imaging", "breast imaging",
			"diagnostic imaging", "condition_monitoring", "follow_up_recommended",
			"thoracic imaging", "pulmonary imaging", "cardiac imaging",
			"respiratory system",
		}},
		// Clinical significance and concrete findings.
		{4, []string{
			"clinical assessment", "medical review", "professional assessment",
			"skin documentation", "medical monitoring", "follow-up care",
			"clinical follow-up", "clinical evaluation",
			"diagnostic analysis", "pathological assessment",
			"pigmentation changes", "color irregularity",
			"health screening", "preventive care", "preventive screening",
			"women's health", "cross-sectional imaging", "CT imaging",
			"soft tissue imaging", "MRI imaging", "diagnostic ultrasound",
			"eye examination", "retinal imaging", "vision assessment",
			"tissue analysis", "microscopy", "internal examination",
			"endoscopic imaging", "laboratory", "diagnostic testing",
			"clinical chemistry",
			"hyperpigmentation", "dark spots", "hypopigmentation", "light spots",
			"lesion borders", "skin texture changes", "surface irregularity",
			"dermatological finding", "dermatological condition",
			"skin condition monitoring", "redness pattern", "skin irritation",
			"skin tone variation", "tonal irregularity",
			"complex imaging", "detailed examination", "density changes",
			"radiological finding", "anatomical changes", "structural abnormality",
			"radiological assessment", "clinical variation", "visual changes",
			"appearance changes", "clinical finding", "anatomical variation",
			"clinical observation", "medical observation",
		}},
		// General medical terms.
		{3, []string{
			"medical imaging", "clinical documentation", "skin imaging",
			"screening examination", "real-time imaging", "medical photography",
			"clinical photography", "medical record", "patient information",
		}},
		// Technical descriptors, often redundant.
		{2, []string{
			"high resolution", "grayscale imaging", "color imaging",
			"routine care", "documentation", "routine imaging",
			"standard imaging", "routine examination", "routine documentation",
			"routine dermatology", "skin health", "medical documentation",
			"baseline skin documentation", "natural skin appearance",
			"normal pigmentation", "consistent skin appearance",
			"normal skin texture", "natural skin surface",
			"clear skin appearance", "no visible abnormalities",
			"DICOM", "medical imaging standard", "digital imaging",
		}},
		// Generic qualifiers.
		{1, []string{"routine", "standard", "normal", "baseline"}},
	}

	out := make(map[string]int)
	for _, tier := range tiers {
		for _, term := range tier.terms {
			out[term] = tier.priority
		}
	}
	return out
}

// redundancyGroups bucket interchangeable keywords; each group keeps a
// single member after collapse. Order matters, a keyword belonging to two
// groups is claimed by the first.
var redundancyGroups = []struct {
	name  string
	terms []string
}{
	{"resolution", []string{"high resolution", "resolution", "imaging quality"}},
	{"routine_terms", []string{"routine", "routine care", "routine examination", "routine imaging", "standard imaging", "baseline documentation"}},
	{"imaging_type", []string{"grayscale imaging", "color imaging", "medical imaging", "clinical imaging"}},
	{"documentation", []string{"documentation", "clinical documentation", "medical documentation"}},
	{"skin_health", []string{"skin health", "skin documentation", "skin imaging"}},
	{"normal_terms", []string{"normal", "healthy", "baseline", "standard"}},
	{"examination_type", []string{"screening examination", "routine examination", "health screening", "preventive care"}},
}

// generateKeywords assembles the searchable keyword list for an analysis.
// Pathological vocabulary only enters when the pathology analyzer flagged
// actual findings.
func generateKeywords(a *Analysis) []string {
	var keywords []string

	var findings *Findings
	if a.Characteristics != nil {
		findings = a.Characteristics.Pathology
	}
	significance := SignificanceRoutine
	var hasFindings bool
	var specific, normals []string
	if findings != nil {
		hasFindings = findings.HasPathologicalFindings
		specific = findings.SpecificFindings
		normals = findings.NormalIndicators
		if findings.ClinicalSignificance != "" {
			significance = findings.ClinicalSignificance
		}
	}

	if base, ok := baseTypeKeywords[a.MedicalType]; ok {
		keywords = append(keywords, base...)
	} else {
		keywords = append(keywords, genericTypeKeywords...)
	}

	if hasFindings {
		switch {
		case a.MedicalType == TypeDermatology:
			keywords = append(keywords, findingKeywords(dermFindingKeywords, specific, "dermatological condition", "skin condition monitoring")...)
		case radiologicalTypes[a.MedicalType]:
			keywords = append(keywords, findingKeywords(radiologicalFindingKeywords, specific, "diagnostic imaging", "radiological assessment")...)
		case a.MedicalType == TypeClinicalPhoto:
			keywords = append(keywords, findingKeywords(clinicalFindingKeywords, specific, "clinical assessment", "medical observation")...)
		}
	} else {
		switch {
		case a.MedicalType == TypeDermatology:
			keywords = append(keywords, dermNormalKeywords...)
		case radiologicalTypes[a.MedicalType]:
			keywords = append(keywords, radiologicalNormalKeywords...)
		case a.MedicalType == TypeClinicalPhoto:
			keywords = append(keywords, clinicalNormalKeywords...)
		}
	}

	keywords = append(keywords, significanceKeywords[significance]...)

	for _, indicator := range normals {
		keywords = append(keywords, normalIndicatorKeywords[indicator]...)
	}

	if a.IsDICOM {
		keywords = append(keywords, dicomKeywords...)
		if a.Modality != "" {
			keywords = append(keywords, a.Modality+" imaging")
		}
	}

	if a.Width >= 1024 || a.Height >= 1024 {
		keywords = append(keywords, "high resolution")
	}
	if a.IsGrayscale {
		keywords = append(keywords, "grayscale imaging")
	} else {
		keywords = append(keywords, "color imaging")
	}

	return dedupeAndPrioritize(keywords)
}

// findingKeywords maps finding tags through the table and appends the
// family's general terms when anything matched.
func findingKeywords(table map[string][]string, findings []string, general ...string) []string {
	var kws []string
	for _, f := range findings {
		kws = append(kws, table[f]...)
	}
	if len(kws) > 0 {
		kws = append(kws, general...)
	}
	return kws
}

// dedupeAndPrioritize is the four-pass cleanup: exact duplicates,
// redundancy-group collapse, substring redundancy, then a stable
// priority sort capped at maxKeywords.
func dedupeAndPrioritize(keywords []string) []string {
	unique := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		if !seen[kw] {
			seen[kw] = true
			unique = append(unique, kw)
		}
	}

	// Collapse each redundancy group to its best present member, placed
	// where the group first appears. Ties keep the earliest member.
	usedGroups := make(map[int]bool)
	collapsed := make([]string, 0, len(unique))
	for _, kw := range unique {
		g := groupIndex(kw)
		if g < 0 {
			collapsed = append(collapsed, kw)
			continue
		}
		if usedGroups[g] {
			continue
		}
		usedGroups[g] = true
		best, bestPriority := "", -1
		for _, cand := range unique {
			if !containsTerm(redundancyGroups[g].terms, cand) {
				continue
			}
			if keywordPriorities[cand] > bestPriority {
				best, bestPriority = cand, keywordPriorities[cand]
			}
		}
		collapsed = append(collapsed, best)
	}

	// Drop keywords contained in an equal-or-higher-priority keyword.
	filtered := make([]string, 0, len(collapsed))
	for _, kw := range collapsed {
		redundant := false
		for _, other := range collapsed {
			if kw != other && strings.Contains(other, kw) &&
				keywordPriorities[kw] <= keywordPriorities[other] {
				redundant = true
				break
			}
		}
		if !redundant {
			filtered = append(filtered, kw)
		}
	}

	// Two groups sharing a member can collapse to the same keyword.
	seen = make(map[string]bool, len(filtered))
	final := make([]string, 0, len(filtered))
	for _, kw := range filtered {
		if !seen[kw] {
			seen[kw] = true
			final = append(final, kw)
		}
	}

	sort.SliceStable(final, func(i, j int) bool {
		return keywordPriorities[final[i]] > keywordPriorities[final[j]]
	})
	if len(final) > maxKeywords {
		final = final[:maxKeywords]
	}
	return final
}

func groupIndex(kw string) int {
	for i, g := range redundancyGroups {
		if containsTerm(g.terms, kw) {
			return i
		}
	}
	return -1
}

func containsTerm(terms []string, kw string) bool {
	for _, t := range terms {
		if t == kw {
			return true
		}
	}
	return false
}
