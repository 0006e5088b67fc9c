package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"med-lab/ai"
	"med-lab/domain/document"
	"med-lab/domain/imaging"
)

// conflictingImageChunk builds an image chunk whose serialized analysis
// carries the given relevance and pathological confidence scores.
func conflictingImageChunk(tb testing.TB, source string, relevance, confidence float64) document.Chunk {
	tb.Helper()
	analysis := imaging.Analysis{
		MedicalType: imaging.TypeDermatology,
		Characteristics: &imaging.Characteristics{
			MedicalRelevanceScore: relevance,
			Pathology:             &imaging.Findings{PathologicalConfidence: confidence},
		},
	}
	info, err := json.Marshal(analysis)
	require.NoError(tb, err)
	return document.Chunk{
		Source:      source,
		ContentType: document.ContentImage,
		Content:     "A dermatological image.",
		Metadata: map[string]string{
			document.MetaMedicalContext: "true",
			document.MetaImageInfo:      string(info),
		},
	}
}

func TestAppendDisclaimer(t *testing.T) {
	t.Run("should warn a patient in plain words", func(t *testing.T) {
		req := require.New(t)

		chunks := []document.Chunk{conflictingImageChunk(t, "mole.jpg", 0.9, 0.2)}
		answer := AppendDisclaimer("Looks routine.", chunks, ai.RolePatient)

		req.True(strings.HasPrefix(answer, "Looks routine.\n\n"))
		req.Contains(answer, "mole.jpg")
		req.Contains(answer, "not a diagnosis")
		req.Contains(answer, "your doctor")
	})

	t.Run("should advise a professional on clinical correlation", func(t *testing.T) {
		req := require.New(t)

		chunks := []document.Chunk{conflictingImageChunk(t, "lesion.png", 0.85, 0.3)}
		answer := AppendDisclaimer("Findings below.", chunks, ai.RoleProfessional)

		req.True(strings.HasPrefix(answer, "Findings below.\n\n"))
		req.Contains(answer, "lesion.png")
		req.Contains(answer, "clinical correlation is recommended")
		req.NotContains(answer, "your doctor")
	})

	t.Run("should treat an unknown role as a patient", func(t *testing.T) {
		req := require.New(t)

		chunks := []document.Chunk{conflictingImageChunk(t, "mole.jpg", 0.9, 0.2)}
		answer := AppendDisclaimer("Looks routine.", chunks, "admin")

		req.Contains(answer, "not a diagnosis")
	})

	t.Run("should name each conflicting document once", func(t *testing.T) {
		req := require.New(t)

		chunks := []document.Chunk{
			conflictingImageChunk(t, "skin_a.jpg", 0.9, 0.1),
			conflictingImageChunk(t, "skin_a.jpg", 0.9, 0.2),
			conflictingImageChunk(t, "skin_b.jpg", 0.8, 0.3),
		}
		answer := AppendDisclaimer("See below.", chunks, ai.RolePatient)

		req.Equal(1, strings.Count(answer, "skin_a.jpg"))
		req.Contains(answer, "skin_a.jpg, skin_b.jpg")
	})

	t.Run("should leave answers over text chunks untouched", func(t *testing.T) {
		req := require.New(t)

		chunks := []document.Chunk{
			{Source: "notes.txt", ContentType: document.ContentText, Content: "Patient is stable."},
		}

		req.Equal("Original.", AppendDisclaimer("Original.", chunks, ai.RolePatient))
		req.Equal("Original.", AppendDisclaimer("Original.", nil, ai.RolePatient))
	})
}

func TestHasConflictingConfidence(t *testing.T) {
	tests := []struct {
		name        string
		relevance   float64
		confidence  float64
		conflicting bool
	}{
		{name: "relevant image without confirmed findings", relevance: 0.9, confidence: 0.2, conflicting: true},
		{name: "scores right at the thresholds", relevance: 0.8, confidence: 0.59, conflicting: true},
		{name: "confidence at the cutoff", relevance: 0.9, confidence: 0.6, conflicting: false},
		{name: "image of low relevance", relevance: 0.7, confidence: 0.1, conflicting: false},
		{name: "confirmed pathology", relevance: 0.95, confidence: 0.8, conflicting: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("test=%s", tt.name), func(t *testing.T) {
			req := require.New(t)

			chunk := conflictingImageChunk(t, "image.png", tt.relevance, tt.confidence)

			req.Equal(tt.conflicting, hasConflictingConfidence(chunk))
		})
	}
}

func TestHasConflictingConfidence_WithoutScores(t *testing.T) {
	t.Run("should never flag a dicom image", func(t *testing.T) {
		req := require.New(t)

		analysis := imaging.Analysis{IsDICOM: true, MedicalType: imaging.TypeCT, Modality: "CT"}
		info, err := json.Marshal(analysis)
		req.NoError(err)
		chunk := document.Chunk{
			Source:      "study.dcm",
			ContentType: document.ContentImage,
			Metadata:    map[string]string{document.MetaImageInfo: string(info)},
		}

		req.False(hasConflictingConfidence(chunk))
	})

	t.Run("should flag a relevant image missing its pathology section", func(t *testing.T) {
		req := require.New(t)

		analysis := imaging.Analysis{
			MedicalType:     imaging.TypeChestXRay,
			Characteristics: &imaging.Characteristics{MedicalRelevanceScore: 0.9},
		}
		info, err := json.Marshal(analysis)
		req.NoError(err)
		chunk := document.Chunk{
			Source:      "cxr.png",
			ContentType: document.ContentImage,
			Metadata:    map[string]string{document.MetaImageInfo: string(info)},
		}

		req.True(hasConflictingConfidence(chunk))
	})

	t.Run("should ignore unreadable analysis metadata", func(t *testing.T) {
		req := require.New(t)

		chunk := document.Chunk{
			Source:      "broken.png",
			ContentType: document.ContentImage,
			Metadata:    map[string]string{document.MetaImageInfo: "{not json"},
		}

		req.False(hasConflictingConfidence(chunk))
	})

	t.Run("should ignore chunks without analysis metadata", func(t *testing.T) {
		req := require.New(t)

		req.False(hasConflictingConfidence(document.Chunk{Source: "notes.txt"}))
	})
}
