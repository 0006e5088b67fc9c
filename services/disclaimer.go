package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"med-lab/ai"
	"med-lab/domain/document"
	"med-lab/domain/imaging"
)

// Conflicting confidence means an image scored at least relevanceThreshold
// on medical relevance while its pathological confidence stayed below
// confidenceThreshold: the image clearly matters, but the analysis could
// not back any finding.
const (
	relevanceThreshold  = 0.8
	confidenceThreshold = 0.6
)

// Disclaimer templates per user role. %s receives the comma-joined names
// of the conflicting documents.
const (
	patientDisclaimer = "Note: the automated analysis of %s rated these images as highly " +
		"relevant but could not confirm any specific finding. This answer is not a " +
		"diagnosis. Please go over these documents with your doctor."
	professionalDisclaimer = "Advisory: automated analysis of %s reported high medical " +
		"relevance with low pathological confidence. Treat the imaging signal as " +
		"unconfirmed; clinical correlation is recommended."
)

// AppendDisclaimer post-processes a generated answer: when any of the
// supporting chunks comes from an image with conflicting confidence
// scores, the role-appropriate disclaimer is appended. Unknown roles get
// the patient wording.
func AppendDisclaimer(answer string, chunks []document.Chunk, role string) string {
	sources := conflictingSources(chunks)
	if len(sources) == 0 {
		return answer
	}

	template := patientDisclaimer
	if role == ai.RoleProfessional {
		template = professionalDisclaimer
	}
	return fmt.Sprintf("%s\n\n%s", answer, fmt.Sprintf(template, strings.Join(sources, ", ")))
}

func conflictingSources(chunks []document.Chunk) []string {
	conflicting := lo.Filter(chunks, func(chunk document.Chunk, _ int) bool {
		return hasConflictingConfidence(chunk)
	})
	return lo.Uniq(lo.Map(conflicting, func(chunk document.Chunk, _ int) string {
		return chunk.Source
	}))
}

// hasConflictingConfidence reads the analysis serialized into the chunk
// metadata at ingestion time. Chunks without one, and DICOM images, which
// carry no heuristic scores, never conflict.
func hasConflictingConfidence(chunk document.Chunk) bool {
	info, ok := chunk.Metadata[document.MetaImageInfo]
	if !ok {
		return false
	}
	var analysis imaging.Analysis
	if err := json.Unmarshal([]byte(info), &analysis); err != nil || analysis.Characteristics == nil {
		return false
	}

	confidence := 0.0
	if pathology := analysis.Characteristics.Pathology; pathology != nil {
		confidence = pathology.PathologicalConfidence
	}
	return analysis.Characteristics.MedicalRelevanceScore >= relevanceThreshold &&
		confidence < confidenceThreshold
}
