package imaging

// Type is the medical image category assigned by classification.
// The heuristic path only ever produces one of the content types below;
// the DICOM path can additionally produce any modality-derived type.
type Type string

const (
	TypeChestXRay     Type = "chest_xray"
	TypeCT            Type = "computed_tomography"
	TypeMR            Type = "magnetic_resonance"
	TypeUltrasound    Type = "ultrasound"
	TypeMammography   Type = "mammography"
	TypeDermatology   Type = "dermatological_image"
	TypeRetinal       Type = "retinal_image"
	TypePathology     Type = "pathological_image"
	TypeEndoscopy     Type = "endoscopy"
	TypeClinicalPhoto Type = "clinical_photograph"
	TypeRadiograph    Type = "medical_radiograph"
	TypeRadiological  Type = "radiological_scan"
	TypeHighResPhoto  Type = "high_resolution_clinical_image"
	TypeDocument      Type = "medical_document"
	TypeLabResult     Type = "lab_result_document"

	// TypeGeneric is the fallback when nothing more specific applies.
	TypeGeneric Type = "medical_image"
)

// Modality-derived types, reachable only through DICOM metadata.
const (
	TypeComputedRadiography Type = "computed_radiography"
	TypeNuclearMedicine     Type = "nuclear_medicine"
	TypeAngiography         Type = "x_ray_angiography"
	TypeFluoroscopy         Type = "radiofluoroscopy"
	TypeDigitalRadiography  Type = "digital_radiography"
	TypeIntraOral           Type = "intra_oral_radiography"
	TypePanoramic           Type = "panoramic_x_ray"
	TypeGeneralMicroscopy   Type = "general_microscopy"
	TypeSlideMicroscopy     Type = "slide_microscopy"
	TypeOther               Type = "other"
	TypePET                 Type = "positron_emission_tomography"
	TypeOphthalmicPhoto     Type = "ophthalmic_photography"
	TypeOphthalmicMapping   Type = "ophthalmic_mapping"
	TypeOphthalmicTomo      Type = "ophthalmic_tomography"
	TypeIVOCT               Type = "intravascular_optical_coherence_tomography"
	TypeIVUS                Type = "intravascular_ultrasound"
)

// Significance is the clinical significance tier attached to pathology
// findings. It is derived from the pathological confidence thresholds,
// never set independently.
type Significance string

const (
	SignificanceRoutine             Significance = "routine_documentation"
	SignificanceRoutineSkin         Significance = "routine_skin_documentation"
	SignificanceSkinDocumentation   Significance = "skin_documentation"
	SignificanceScreening           Significance = "screening_examination"
	SignificanceMonitoring          Significance = "condition_monitoring"
	SignificanceFollowUp            Significance = "follow_up_recommended"
	SignificanceProfessionalReview  Significance = "professional_review_recommended"
	SignificanceClinicalCorrelation Significance = "clinical_correlation_recommended"
	SignificancePathological        Significance = "pathological_examination"
)

// Analysis is the result of analyzing one uploaded image. It is built once
// per image and never mutated afterwards. The DICOM fields and the
// Characteristics field are mutually exclusive: a DICOM parse fills the
// former, the heuristic content path fills the latter.
type Analysis struct {
	IsDICOM     bool    `json:"is_dicom"`
	MedicalType Type    `json:"medical_type"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Mode        string  `json:"mode,omitempty"`
	Format      string  `json:"format,omitempty"`
	IsGrayscale bool    `json:"is_grayscale"`
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
	FileSize    int     `json:"file_size_bytes"`

	// DICOM path only.
	Modality                  string            `json:"modality,omitempty"`
	BodyPartExamined          string            `json:"body_part_examined,omitempty"`
	StudyDescription          string            `json:"study_description,omitempty"`
	SeriesDescription         string            `json:"series_description,omitempty"`
	ImageType                 []string          `json:"image_type,omitempty"`
	PhotometricInterpretation string            `json:"photometric_interpretation,omitempty"`
	DICOMMetadata             map[string]string `json:"dicom_metadata,omitempty"`

	// Heuristic path only.
	Characteristics *Characteristics `json:"medical_context,omitempty"`

	// Fallback path only: set when the bytes could not be decoded at all.
	AnalysisError    string `json:"analysis_error,omitempty"`
	FallbackAnalysis bool   `json:"fallback_analysis,omitempty"`
}

// Characteristics carries the content statistics extracted from a decoded
// image, the filename signal, and the pathology assessment.
type Characteristics struct {
	Intensity IntensityStats `json:"intensity"`
	Color     *ColorStats    `json:"color,omitempty"`
	Texture   TextureStats   `json:"texture"`

	FilenameIndicators    []string  `json:"filename_indicators"`
	MedicalRelevanceScore float64   `json:"medical_relevance_score"`
	Pathology             *Findings `json:"pathological_analysis,omitempty"`
}

// IntensityStats are luminance statistics of the decoded pixel plane.
type IntensityStats struct {
	Mean          float64 `json:"mean_intensity"`
	Std           float64 `json:"std_intensity"`
	Min           float64 `json:"min_intensity"`
	Max           float64 `json:"max_intensity"`
	Range         float64 `json:"intensity_range"`
	ContrastRatio float64 `json:"contrast_ratio"`

	HasHighContrast   bool `json:"has_high_contrast"`
	HasDarkBackground bool `json:"has_dark_background"`
	HasBrightRegions  bool `json:"has_bright_regions"`

	Distribution IntensityDistribution `json:"intensity_distribution"`
}

// IntensityDistribution summarizes the shape of the luminance histogram.
type IntensityDistribution struct {
	NumPeaks            int     `json:"num_peaks"`
	Bimodal             bool    `json:"has_bimodal_distribution"`
	BackgroundPeakRatio float64 `json:"background_peak_ratio"`
	Skewness            float64 `json:"intensity_skewness"`
}

// ColorStats are present only for images with real color content.
type ColorStats struct {
	MeanRGB            [3]float64 `json:"mean_rgb"`
	Variance           float64    `json:"color_variance"`
	DominantChannel    int        `json:"dominant_color_channel"`
	SkinToneLikelihood float64    `json:"skin_tone_likelihood"`
}

// TextureStats are edge and texture measurements over the luminance plane.
type TextureStats struct {
	EdgeDensity        float64 `json:"edge_density"`
	TextureComplexity  float64 `json:"texture_complexity"`
	HasRegularPatterns bool    `json:"has_regular_patterns"`
}

// Findings is the pathology assessment for a classified image. The specific
// and normal vocabularies are disjoint: a given signal contributes to one
// side or the other, never both.
type Findings struct {
	HasPathologicalFindings bool         `json:"has_pathological_findings"`
	PathologicalConfidence  float64      `json:"pathological_confidence"`
	SpecificFindings        []string     `json:"specific_findings"`
	NormalIndicators        []string     `json:"normal_indicators"`
	ClinicalSignificance    Significance `json:"clinical_significance"`
}

// ContentTypes lists every type the heuristic classifier can assign.
func ContentTypes() []Type {
	return []Type{
		TypeChestXRay, TypeCT, TypeMR, TypeUltrasound, TypeMammography,
		TypeDermatology, TypeRetinal, TypePathology, TypeEndoscopy,
		TypeClinicalPhoto, TypeRadiograph, TypeRadiological,
		TypeHighResPhoto, TypeDocument, TypeLabResult, TypeGeneric,
	}
}
