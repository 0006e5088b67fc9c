package mimetypes

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"
	TextHTML  MIME = "text/html"
	TextCSS   MIME = "text/css"

	ApplicationPDF   MIME = "application/pdf"
	ApplicationJSON  MIME = "application/json"
	ApplicationXML   MIME = "application/xml"
	ApplicationDICOM MIME = "application/dicom"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageBMP  MIME = "image/bmp"
	ImageTIFF MIME = "image/tiff"
	ImageWebP MIME = "image/webp"
)

// Detect sniffs the effective MIME type from raw upload content.
func Detect(data []byte) MIME {
	detected := mimetype.Detect(data)
	parsed, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return Unknown
	}
	return MIME(parsed)
}

func ToMIME(s string) MIME {
	parsed, _, err := mime.ParseMediaType(s)
	if err != nil {
		return Unknown
	}
	return MIME(parsed)
}

// IsImage covers both regular image formats and DICOM, which carries pixel
// data even though its MIME type is not under image/.
func IsImage(m MIME) bool {
	return strings.HasPrefix(string(m), "image/") || m == ApplicationDICOM
}

func IsPDF(m MIME) bool {
	return m == ApplicationPDF
}

func IsText(m MIME) bool {
	return strings.HasPrefix(string(m), "text/") ||
		m == ApplicationJSON ||
		m == ApplicationXML
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}
