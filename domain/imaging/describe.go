package imaging

import (
	"fmt"
	"strings"
)

// friendlyTypeNames translate technical types into patient vocabulary.
var friendlyTypeNames = map[Type]string{
	TypeChestXRay:      "Chest X-ray",
	TypeCT:             "CT scan",
	TypeMR:             "MRI scan",
	TypeUltrasound:     "Ultrasound image",
	TypeMammography:    "Mammogram",
	TypeDermatology:    "Skin condition photo",
	TypeRetinal:        "Eye examination photo",
	TypePathology:      "Tissue sample image",
	TypeEndoscopy:      "Internal examination image",
	TypeClinicalPhoto:  "Clinical photo",
	TypeRadiograph:     "Medical X-ray",
	TypeRadiological:   "Medical scan",
	TypeHighResPhoto:   "High-quality clinical photo",
	TypeDocument:       "Medical report or lab result",
	TypeLabResult:      "Laboratory test result",
	"microscopy_image": "Microscopic image",
}

func friendlyTypeName(t Type) string {
	if name, ok := friendlyTypeNames[t]; ok {
		return name
	}
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Neutral base contexts per type. The significance-aware wording below
// builds on these so routine findings never read as diagnoses.
var baseClinicalContexts = map[Type]string{
	TypeChestXRay:     "for pulmonary and cardiac imaging",
	TypeCT:            "for detailed cross-sectional imaging",
	TypeMR:            "for soft tissue and organ imaging",
	TypeUltrasound:    "for real-time imaging assessment",
	TypeMammography:   "for breast health screening",
	TypeDermatology:   "for skin documentation",
	TypeRetinal:       "for eye health examination",
	TypePathology:     "for histological analysis",
	TypeEndoscopy:     "for internal examination",
	TypeClinicalPhoto: "for clinical documentation",
	TypeDocument:      "containing clinical information",
	TypeLabResult:     "containing laboratory test results",
}

const defaultClinicalContext = "for medical documentation"

// clinicalContext phrases the purpose of the image according to its type
// and the clinical significance of the findings.
func clinicalContext(a *Analysis) string {
	significance := SignificanceRoutine
	if a.Characteristics != nil && a.Characteristics.Pathology != nil &&
		a.Characteristics.Pathology.ClinicalSignificance != "" {
		significance = a.Characteristics.Pathology.ClinicalSignificance
	}

	base, ok := baseClinicalContexts[a.MedicalType]
	if !ok {
		base = defaultClinicalContext
	}

	var context string
	switch significance {
	case SignificanceRoutine, SignificanceRoutineSkin:
		switch a.MedicalType {
		case TypeDermatology:
			context = "for routine skin health documentation"
		case TypeChestXRay, TypeCT, TypeMR:
			context = "for routine health screening"
		default:
			context = base
		}
	case SignificanceScreening:
		context = base + " and health screening"
	case SignificanceMonitoring:
		if a.MedicalType == TypeDermatology {
			context = "for skin condition monitoring and care"
		} else {
			context = base + " and condition monitoring"
		}
	case SignificanceFollowUp:
		context = base + " with follow-up recommended"
	case SignificanceProfessionalReview:
		context = base + " for professional assessment"
	case SignificancePathological:
		context = base + " and diagnostic analysis"
	default:
		context = base
	}

	if a.IsDICOM && a.BodyPartExamined != "" && a.BodyPartExamined != "Unknown" {
		return context + " of " + strings.ToLower(a.BodyPartExamined)
	}
	return context
}

// comprehensiveIndicators merges filename indicators with content-derived
// ones, deduplicated in emission order.
func comprehensiveIndicators(a *Analysis) []string {
	c := a.Characteristics
	if c == nil {
		return nil
	}

	var indicators []string
	indicators = append(indicators, c.FilenameIndicators...)

	if c.Intensity.HasHighContrast {
		indicators = append(indicators, "high contrast imaging")
	}
	if c.Intensity.HasDarkBackground {
		indicators = append(indicators, "radiological imaging")
	}
	if strings.Contains(string(a.MedicalType), "dermatological") &&
		c.Color != nil && c.Color.SkinToneLikelihood > 0.5 {
		indicators = append(indicators, "skin tissue visible")
	}
	if strings.Contains(string(a.MedicalType), "pathological") &&
		c.Texture.TextureComplexity > 1.5 {
		indicators = append(indicators, "microscopic detail")
	}

	seen := make(map[string]bool, len(indicators))
	out := indicators[:0]
	for _, ind := range indicators {
		if !seen[ind] {
			seen[ind] = true
			out = append(out, ind)
		}
	}
	return out
}

func confidenceClause(relevance float64, isDICOM bool) string {
	switch {
	case relevance > 0.8:
		return "High confidence medical classification"
	case relevance > 0.6:
		return "Good confidence medical classification"
	case relevance > 0.4:
		return "Moderate confidence medical classification"
	case isDICOM:
		return "DICOM medical imaging standard"
	default:
		return ""
	}
}

// describeAnalysis renders the analysis as a period-joined sequence of
// clauses, patient-friendly wording first and technical detail after.
// The output doubles as the text embedded for retrieval.
func describeAnalysis(a *Analysis) string {
	var parts []string

	friendly := friendlyTypeName(a.MedicalType)
	parts = append(parts, "Medical image: "+friendly)

	if string(a.MedicalType) != strings.ReplaceAll(strings.ToLower(friendly), " ", "_") {
		parts = append(parts, "Classification: "+strings.ReplaceAll(string(a.MedicalType), "_", " "))
	}

	if a.IsDICOM {
		modality := a.Modality
		if modality == "" {
			modality = "Unknown"
		}
		parts = append(parts, "DICOM modality: "+modality)
		if a.BodyPartExamined != "" && a.BodyPartExamined != "Unknown" {
			parts = append(parts, "Anatomical region: "+a.BodyPartExamined)
		}
		if a.StudyDescription != "" {
			parts = append(parts, "Clinical study: "+a.StudyDescription)
		}
		if a.SeriesDescription != "" {
			parts = append(parts, "Image series: "+a.SeriesDescription)
		}
	}

	if context := clinicalContext(a); context != "" {
		parts = append(parts, context)
	}

	if a.Width > 0 && a.Height > 0 {
		parts = append(parts, fmt.Sprintf("Resolution: %dx%d", a.Width, a.Height))
		if a.Width >= 1024 || a.Height >= 1024 {
			parts = append(parts, "High resolution imaging")
		}
	}

	if a.IsGrayscale {
		parts = append(parts, "Grayscale medical imaging")
	} else {
		parts = append(parts, "Color clinical imaging")
	}

	if indicators := comprehensiveIndicators(a); len(indicators) > 0 {
		parts = append(parts, "Medical features: "+strings.Join(indicators, ", "))
	}

	var relevance float64
	if a.Characteristics != nil {
		relevance = a.Characteristics.MedicalRelevanceScore
	}
	if clause := confidenceClause(relevance, a.IsDICOM); clause != "" {
		parts = append(parts, clause)
	}

	if keywords := generateKeywords(a); len(keywords) > 0 {
		parts = append(parts, "Medical keywords: "+strings.Join(keywords, ", "))
	}

	return strings.Join(parts, ". ") + "."
}
