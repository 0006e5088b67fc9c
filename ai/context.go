package ai

import (
	"fmt"
	"strings"

	"med-lab/domain/imaging"
)

// GenericContext is the embedding text used when nothing usable could be
// extracted from an image.
const GenericContext = "medical image for clinical diagnostic evaluation and healthcare analysis"

// BuildEmbeddingContext turns an image analysis into the text that stands
// in for the image in the retrieval index. DICOM metadata wins when
// present; otherwise the heuristic classification and filename indicators
// carry the signal.
func BuildEmbeddingContext(analysis imaging.Analysis) string {
	if !analysis.IsDICOM && analysis.MedicalType == "" {
		return GenericContext
	}

	var parts []string

	if analysis.IsDICOM {
		modality := analysis.Modality
		if modality == "" {
			modality = "Unknown"
		}
		parts = append(parts, fmt.Sprintf("DICOM %s medical image", modality))

		if analysis.BodyPartExamined != "" && analysis.BodyPartExamined != "Unknown" {
			parts = append(parts, fmt.Sprintf("of %s", analysis.BodyPartExamined))
		}
		if analysis.StudyDescription != "" {
			parts = append(parts, fmt.Sprintf("for %s", analysis.StudyDescription))
		}
		if analysis.SeriesDescription != "" {
			parts = append(parts, fmt.Sprintf("series %s", analysis.SeriesDescription))
		}
	} else {
		parts = append(parts, strings.ReplaceAll(string(analysis.MedicalType), "_", " "))

		if analysis.Characteristics != nil && len(analysis.Characteristics.FilenameIndicators) > 0 {
			parts = append(parts, fmt.Sprintf("with indicators: %s",
				strings.Join(analysis.Characteristics.FilenameIndicators, ", ")))
		}
	}

	if analysis.Width > 0 && analysis.Height > 0 {
		parts = append(parts, fmt.Sprintf("resolution %dx%d", analysis.Width, analysis.Height))
	}

	if analysis.Characteristics != nil {
		score := analysis.Characteristics.MedicalRelevanceScore
		switch {
		case score > 0.7:
			parts = append(parts, "high medical relevance")
		case score > 0.5:
			parts = append(parts, "moderate medical relevance")
		}
	}

	parts = append(parts,
		"for clinical diagnostic evaluation",
		"medical documentation",
		"healthcare analysis",
	)

	return strings.Join(parts, " ")
}
