package imaging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVocabulary_TypeFromFilename(t *testing.T) {
	req := require.New(t)
	v, err := NewVocabulary()
	req.NoError(err)

	tests := []struct {
		name     string
		filename string
		want     Type
		ok       bool
	}{
		{"chest x-ray", "chest_xray_2024.png", TypeChestXRay, true},
		{"case insensitive", "CT_Abdomen.dcm", TypeCT, true},
		{"mri", "brain_mri.dcm", TypeMR, true},
		{"echo", "echo_cardiogram.png", TypeUltrasound, true},
		{"skin rash", "skin_rash.jpeg", TypeDermatology, true},
		{"retina", "retina_photo.png", TypeRetinal, true},
		{"biopsy", "biopsy_slide_03.png", TypePathology, true},
		{"blood work", "blood_test_results.pdf", TypeLabResult, true},
		{"discharge papers", "discharge_summary.pdf", TypeDocument, true},
		// Substring matching takes what it finds: "picture" contains "ct".
		{"accidental substring", "picture.png", TypeCT, true},
		{"camera filename", "IMG_4821.jpg", "", false},
		{"empty filename", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.TypeFromFilename(tt.filename)
			req.Equal(tt.ok, ok, "test=%s", tt.name)
			req.Equal(tt.want, got, "test=%s", tt.name)
		})
	}
}

func TestVocabulary_Indicators(t *testing.T) {
	req := require.New(t)
	v, err := NewVocabulary()
	req.NoError(err)

	tests := []struct {
		name     string
		filename string
		want     []string
	}{
		{"chest x-ray", "chest_xray.png", []string{"xray", "chest"}},
		{"ct scan", "ct_scan_01.png", []string{"ct", "scan"}},
		{"ultrasound", "ultrasound_us.png", []string{"ultrasound", "us"}},
		{"nothing medical", "holiday.png", []string{}},
		{"empty filename", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Indicators(tt.filename)
			req.NotNil(got, "test=%s", tt.name)
			req.Equal(tt.want, got, "test=%s", tt.name)
		})
	}
}
