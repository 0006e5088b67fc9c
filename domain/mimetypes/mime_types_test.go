package mimetypes

import (
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		expected MIME
		want     bool
	}{
		// Text types
		{"Plain text with charset", "text/plain; charset=utf-8", TextPlain, true},
		{"HTML text", "text/html; charset=utf-8", TextHTML, true},
		{"CSS text", "text/css", TextCSS, true},

		// Application types
		{"JSON", "application/json", ApplicationJSON, true},
		{"JSON with charset", "application/json; charset=utf-8", ApplicationJSON, true},
		{"PDF", "application/pdf", ApplicationPDF, true},
		{"XML detected as text/xml", "text/xml; charset=utf-8", ApplicationXML, false}, // attention
		{"XML detected as application/xml", "application/xml", ApplicationXML, true},

		// Image types
		{"PNG", "image/png", ImagePNG, true},
		{"JPEG", "image/jpeg", ImageJPEG, true},
		{"GIF", "image/gif", ImageGIF, true},

		// Fallback / mismatch
		{"Mismatch", "text/plain; charset=utf-8", ApplicationJSON, false},
		{"Unknown type", "application/octet-stream", TextPlain, false},
		{"Invalid MIME", "not a mime", TextPlain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Matches(tt.detected, tt.expected)
			if ok != tt.want && got != tt.expected {
				t.Errorf("Matches(%q, %q) = %v; want %v", tt.detected, tt.expected, ok, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	dicomHeader := append(make([]byte, 128), []byte("DICM")...)

	tests := []struct {
		name string
		data []byte
		want MIME
	}{
		{"PNG magic", pngMagic, ImagePNG},
		{"PDF header", []byte("%PDF-1.4 sample"), ApplicationPDF},
		{"DICOM preamble", dicomHeader, ApplicationDICOM},
		{"Plain text", []byte("Patient presents with mild symptoms."), TextPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestRouting(t *testing.T) {
	tests := []struct {
		name      string
		m         MIME
		wantImage bool
		wantText  bool
		wantPDF   bool
	}{
		{"png is image", ImagePNG, true, false, false},
		{"dicom routes as image", ApplicationDICOM, true, false, false},
		{"plain text", TextPlain, false, true, false},
		{"json is textual", ApplicationJSON, false, true, false},
		{"pdf", ApplicationPDF, false, false, true},
		{"unknown routes nowhere", Unknown, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.m); got != tt.wantImage {
				t.Errorf("IsImage(%q) = %v; want %v", tt.m, got, tt.wantImage)
			}
			if got := IsText(tt.m); got != tt.wantText {
				t.Errorf("IsText(%q) = %v; want %v", tt.m, got, tt.wantText)
			}
			if got := IsPDF(tt.m); got != tt.wantPDF {
				t.Errorf("IsPDF(%q) = %v; want %v", tt.m, got, tt.wantPDF)
			}
		})
	}
}
