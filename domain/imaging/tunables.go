package imaging

import (
	"encoding/json"
	"fmt"
	"os"
)

// Tunables groups every empirically chosen threshold used by the
// classifier and the pathology analyzers. The defaults come from manual
// calibration on mixed patient uploads; none of them has been validated
// against a labeled dataset, so deployments can override them from a JSON
// file instead of recompiling.
type Tunables struct {
	// Grayscale detection: maximum mean absolute difference between any
	// two color channels for an RGB image to still count as grayscale.
	GrayscaleChannelDiff float64 `json:"grayscale_channel_diff"`

	// Heuristic type classification. The side values are pixel gates:
	// HighResSide for the X-ray resolution class, MidResSide for CT and
	// MR slices, HighResClinicalSide for high resolution clinical photos.
	HighResSide         int     `json:"high_res_side"`
	MidResSide          int     `json:"mid_res_side"`
	HighResClinicalSide int     `json:"high_res_clinical_side"`
	LandscapeAspect     float64 `json:"landscape_aspect"`
	SquareAspectLow     float64 `json:"square_aspect_low"`
	SquareAspectHigh    float64 `json:"square_aspect_high"`
	CTEdgeDensity       float64 `json:"ct_edge_density"`
	UltrasoundTexture   float64 `json:"ultrasound_texture"`
	SkinToneLikelihood  float64 `json:"skin_tone_likelihood"`

	// Dermatological pathology scoring.
	DermColorVarHigh    float64 `json:"derm_color_var_high"`
	DermColorVarNormal  float64 `json:"derm_color_var_normal"`
	DermRednessHigh     float64 `json:"derm_redness_high"`
	DermRednessNormal   float64 `json:"derm_redness_normal"`
	DermExtremeRegion   float64 `json:"derm_extreme_region"`
	DermConsistentDark  float64 `json:"derm_consistent_dark"`
	DermEdgeHigh        float64 `json:"derm_edge_high"`
	DermEdgeNormal      float64 `json:"derm_edge_normal"`
	DermTextureHigh     float64 `json:"derm_texture_high"`
	DermTextureNormal   float64 `json:"derm_texture_normal"`
	DermToneVariation   float64 `json:"derm_tone_variation"`
	DermScoreMonitoring float64 `json:"derm_score_monitoring"`
	DermScoreFollowUp   float64 `json:"derm_score_follow_up"`

	// Conservative radiological and clinical photo gates.
	RadioEdgeDensity float64 `json:"radio_edge_density"`
	RadioTexture     float64 `json:"radio_texture"`
	PhotoColorVar    float64 `json:"photo_color_var"`
	PhotoEdgeDensity float64 `json:"photo_edge_density"`

	// Texture analysis runs a 5x5 local variance window over the image.
	// Above this pixel budget the window grid is subsampled to keep the
	// per-request cost bounded.
	TexturePixelBudget int `json:"texture_pixel_budget"`
}

// DefaultTunables returns the calibration the analyzers were tuned with.
func DefaultTunables() Tunables {
	return Tunables{
		GrayscaleChannelDiff: 2.0,

		HighResSide:         1000,
		MidResSide:          512,
		HighResClinicalSide: 1500,
		LandscapeAspect:     1.1,
		SquareAspectLow:     0.8,
		SquareAspectHigh:    1.2,
		CTEdgeDensity:       0.1,
		UltrasoundTexture:   1.0,
		SkinToneLikelihood:  0.3,

		DermColorVarHigh:    1500,
		DermColorVarNormal:  800,
		DermRednessHigh:     0.3,
		DermRednessNormal:   0.1,
		DermExtremeRegion:   0.05,
		DermConsistentDark:  0.01,
		DermEdgeHigh:        0.12,
		DermEdgeNormal:      0.08,
		DermTextureHigh:     1.2,
		DermTextureNormal:   0.8,
		DermToneVariation:   0.4,
		DermScoreMonitoring: 0.4,
		DermScoreFollowUp:   0.25,

		RadioEdgeDensity: 0.2,
		RadioTexture:     2.0,
		PhotoColorVar:    3000,
		PhotoEdgeDensity: 0.15,

		TexturePixelBudget: 512 * 512,
	}
}

// LoadTunables reads a JSON override file on top of the defaults. Fields
// absent from the file keep their default value.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tunables file: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing tunables file %s: %w", path, err)
	}
	return t, nil
}
