package imaging

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// dicomMagic sits at byte offset 128 of every part-10 DICOM file.
const dicomMagic = "DICM"

var dicomExtensions = map[string]bool{
	".dcm":   true,
	".dicom": true,
	".ima":   true,
	".img":   true,
}

// modalityTypes maps DICOM modality codes to medical types. Codes not
// listed here resolve to TypeGeneric.
var modalityTypes = map[string]Type{
	"CR":    TypeComputedRadiography,
	"CT":    TypeCT,
	"MR":    TypeMR,
	"NM":    TypeNuclearMedicine,
	"US":    TypeUltrasound,
	"XA":    TypeAngiography,
	"RF":    TypeFluoroscopy,
	"DX":    TypeDigitalRadiography,
	"MG":    TypeMammography,
	"IO":    TypeIntraOral,
	"PX":    TypePanoramic,
	"GM":    TypeGeneralMicroscopy,
	"SM":    TypeSlideMicroscopy,
	"OT":    TypeOther,
	"PT":    TypePET,
	"ES":    TypeEndoscopy,
	"OP":    TypeOphthalmicPhoto,
	"OPM":   TypeOphthalmicMapping,
	"OPT":   TypeOphthalmicTomo,
	"IVOCT": TypeIVOCT,
	"IVUS":  TypeIVUS,
}

// errNoModality marks datasets that parse but carry no modality tag.
// Callers treat them like any non-DICOM image.
var errNoModality = fmt.Errorf("dicom dataset has no modality")

// DetectDICOM sniffs the part-10 magic and falls back to the filename
// extension for raw datasets without a preamble.
func DetectDICOM(data []byte, filename string) bool {
	if len(data) > 132 && string(data[128:132]) == dicomMagic {
		return true
	}
	return dicomExtensions[strings.ToLower(filepath.Ext(filename))]
}

// analyzeDICOM extracts the metadata needed for classification. Pixel data
// is skipped, only the header matters here.
func analyzeDICOM(data []byte) (Analysis, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil, dicom.SkipPixelData())
	if err != nil {
		return Analysis{}, fmt.Errorf("parsing dicom dataset: %w", err)
	}

	modality := dicomString(&ds, tag.Modality)
	if modality == "" {
		return Analysis{}, errNoModality
	}
	medicalType, ok := modalityTypes[modality]
	if !ok {
		medicalType = TypeGeneric
	}

	a := Analysis{
		IsDICOM:                   true,
		MedicalType:               medicalType,
		FileSize:                  len(data),
		Modality:                  modality,
		BodyPartExamined:          dicomString(&ds, tag.BodyPartExamined),
		StudyDescription:          dicomString(&ds, tag.StudyDescription),
		SeriesDescription:         dicomString(&ds, tag.SeriesDescription),
		ImageType:                 dicomStrings(&ds, tag.ImageType),
		PhotometricInterpretation: dicomString(&ds, tag.PhotometricInterpretation),
	}
	if cols, rows := dicomInt(&ds, tag.Columns), dicomInt(&ds, tag.Rows); cols > 0 && rows > 0 {
		a.Width, a.Height = cols, rows
	}
	a.DICOMMetadata = map[string]string{
		"patient_id":         dicomString(&ds, tag.PatientID),
		"study_date":         dicomString(&ds, tag.StudyDate),
		"acquisition_date":   dicomString(&ds, tag.AcquisitionDate),
		"institution_name":   dicomString(&ds, tag.InstitutionName),
		"manufacturer":       dicomString(&ds, tag.Manufacturer),
		"manufacturer_model": dicomString(&ds, tag.ManufacturerModelName),
	}
	return a, nil
}

func dicomString(ds *dicom.Dataset, t tag.Tag) string {
	el, err := ds.FindElementByTag(t)
	if err != nil || el == nil {
		return ""
	}
	switch v := el.Value.GetValue().(type) {
	case []string:
		if len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

func dicomStrings(ds *dicom.Dataset, t tag.Tag) []string {
	el, err := ds.FindElementByTag(t)
	if err != nil || el == nil {
		return nil
	}
	values, ok := el.Value.GetValue().([]string)
	if !ok || len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func dicomInt(ds *dicom.Dataset, t tag.Tag) int {
	el, err := ds.FindElementByTag(t)
	if err != nil || el == nil {
		return 0
	}
	if v, ok := el.Value.GetValue().([]int); ok && len(v) > 0 {
		return v[0]
	}
	return 0
}
