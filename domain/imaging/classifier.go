package imaging

import (
	"fmt"
	"log/slog"
	"math"
)

// Classifier analyzes uploaded medical images without any external model.
// DICOM metadata drives the classification when present, pixel heuristics
// otherwise.
type Classifier struct {
	logger *slog.Logger
	vocab  *Vocabulary
	tun    Tunables
}

func NewClassifier(logger *slog.Logger, tun Tunables) (*Classifier, error) {
	vocab, err := NewVocabulary()
	if err != nil {
		return nil, fmt.Errorf("building filename vocabulary: %w", err)
	}
	return &Classifier{logger: logger, vocab: vocab, tun: tun}, nil
}

// Analyze inspects raw upload bytes and never fails: undecodable input
// yields a fallback analysis carrying the error text, so a corrupted
// image cannot abort a document upload.
func (c *Classifier) Analyze(data []byte, filename string) Analysis {
	if DetectDICOM(data, filename) {
		analysis, err := analyzeDICOM(data)
		if err == nil {
			c.logger.Info("analyzed DICOM image",
				"filename", filename,
				"medical_type", analysis.MedicalType,
				"modality", analysis.Modality)
			return analysis
		}
		c.logger.Debug("DICOM analysis failed, trying standard image analysis",
			"filename", filename, "error", err)
	}
	return c.analyzeImage(data, filename)
}

func (c *Classifier) analyzeImage(data []byte, filename string) Analysis {
	p, err := decodePlane(data)
	if err != nil {
		c.logger.Warn("image decoding failed, producing fallback analysis",
			"filename", filename, "error", err)
		return c.fallbackAnalysis(data, filename, err)
	}

	grayscale := detectGrayscale(p, c.tun)
	chars := extractCharacteristics(p, grayscale, c.tun)

	medicalType, ok := c.vocab.TypeFromFilename(filename)
	if !ok {
		aspectRatio := float64(p.w) / float64(p.h)
		medicalType = classifyContent(p, grayscale, aspectRatio, &chars, c.tun)
	}

	chars.FilenameIndicators = c.vocab.Indicators(filename)
	chars.MedicalRelevanceScore = relevanceScore(len(chars.FilenameIndicators), grayscale, p.w, p.h, medicalType)

	findings := analyzePathology(p, medicalType, &chars, c.tun)
	chars.Pathology = &findings

	analysis := Analysis{
		MedicalType:     medicalType,
		Width:           p.w,
		Height:          p.h,
		Mode:            p.mode,
		Format:          p.format,
		IsGrayscale:     grayscale,
		AspectRatio:     math.Round(float64(p.w)/float64(p.h)*100) / 100,
		FileSize:        len(data),
		Characteristics: &chars,
	}
	c.logger.Info("analyzed medical image",
		"filename", filename,
		"medical_type", medicalType,
		"grayscale", grayscale,
		"relevance", chars.MedicalRelevanceScore)
	return analysis
}

// fallbackAnalysis is the total-function safety net: filename indicators
// still contribute, everything pixel-derived is absent.
func (c *Classifier) fallbackAnalysis(data []byte, filename string, cause error) Analysis {
	return Analysis{
		MedicalType:      TypeGeneric,
		FileSize:         len(data),
		AnalysisError:    cause.Error(),
		FallbackAnalysis: true,
		Characteristics: &Characteristics{
			FilenameIndicators:    c.vocab.Indicators(filename),
			MedicalRelevanceScore: 0.3,
		},
	}
}

// Describe renders an analysis as an embedding-ready text description.
func (c *Classifier) Describe(a *Analysis) string {
	return describeAnalysis(a)
}

// Keywords generates the deduplicated, priority-ranked keyword list for
// search indexing.
func (c *Classifier) Keywords(a *Analysis) []string {
	return generateKeywords(a)
}

// Report bundles an analysis with its rendered description and keywords.
type Report struct {
	Analysis    Analysis `json:"analysis"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Report runs the full pipeline on raw upload bytes: analysis, description
// and keywords in one pass. Like Analyze, it never fails.
func (c *Classifier) Report(data []byte, filename string) Report {
	analysis := c.Analyze(data, filename)
	return Report{
		Analysis:    analysis,
		Description: c.Describe(&analysis),
		Keywords:    c.Keywords(&analysis),
	}
}

// relevanceScore estimates how medically meaningful the image is.
// The result always lands in [0, 1].
func relevanceScore(indicators int, grayscale bool, w, h int, t Type) float64 {
	score := 0.5
	score += float64(indicators) * 0.1
	if grayscale {
		score += 0.2
	}
	if w >= 512 && h >= 512 {
		score += 0.1
	}
	if t != TypeGeneric {
		score += 0.2
	}
	return math.Min(1.0, score)
}
