package imaging

import (
	"bytes"
	"image"
	"math"
	"sort"

	// Register the decoders for every container format patients upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// plane holds decoded pixel data as float64 planes on a 0-255 scale.
// The luminance plane is the plain per-pixel channel mean; for
// single-channel sources it is the channel itself and r/g/b stay nil.
type plane struct {
	w, h int

	r, g, b []float64
	lum     []float64

	nativeGray bool
	mode       string
	format     string
}

func (p *plane) pixels() int { return p.w * p.h }

func (p *plane) at(x, y int) float64 { return p.lum[y*p.w+x] }

// decodePlane decodes raw bytes into pixel planes. This is the only step
// of the whole analysis that can fail.
func decodePlane(data []byte) (*plane, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	p := &plane{w: w, h: h, format: format}

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		p.nativeGray = true
		p.mode = "L"
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		p.mode = "RGBA"
	case *image.Paletted:
		p.mode = "P"
	case *image.CMYK:
		p.mode = "CMYK"
	default:
		p.mode = "RGB"
	}

	n := w * h
	p.lum = make([]float64, n)
	if !p.nativeGray {
		p.r = make([]float64, n)
		p.g = make([]float64, n)
		p.b = make([]float64, n)
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r, g, b := float64(r16>>8), float64(g16>>8), float64(b16>>8)
			if p.nativeGray {
				p.lum[i] = r
			} else {
				p.r[i], p.g[i], p.b[i] = r, g, b
				p.lum[i] = (r + g + b) / 3
			}
			i++
		}
	}
	return p, nil
}

// detectGrayscale decides whether the image is logically grayscale. The
// declared color mode alone is not enough: single-channel content is often
// re-encoded as RGB, so for color modes the per-channel differences decide.
// The threshold tolerates compression artifacts.
func detectGrayscale(p *plane, tun Tunables) bool {
	if p.nativeGray {
		return true
	}
	n := p.pixels()
	if n == 0 {
		return false
	}
	var rg, rb, gb float64
	for i := 0; i < n; i++ {
		rg += math.Abs(p.r[i] - p.g[i])
		rb += math.Abs(p.r[i] - p.b[i])
		gb += math.Abs(p.g[i] - p.b[i])
	}
	fn := float64(n)
	maxDiff := math.Max(rg/fn, math.Max(rb/fn, gb/fn))
	return maxDiff < tun.GrayscaleChannelDiff
}

// extractCharacteristics computes every content statistic the classifier
// and the pathology analyzers consume. Color statistics are only attached
// when the image carries real color content.
func extractCharacteristics(p *plane, grayscale bool, tun Tunables) Characteristics {
	c := Characteristics{
		Intensity: intensityStats(p.lum),
		Texture: TextureStats{
			EdgeDensity:        edgeDensity(p),
			TextureComplexity:  textureComplexity(p, tun.TexturePixelBudget),
			HasRegularPatterns: detectRegularPatterns(p),
		},
	}
	if !grayscale && p.r != nil {
		c.Color = colorStats(p)
	}
	return c
}

func intensityStats(lum []float64) IntensityStats {
	if len(lum) == 0 {
		return IntensityStats{}
	}
	mean := meanOf(lum)
	std := stdOf(lum, mean)
	lo, hi := minMax(lum)

	s := IntensityStats{
		Mean:  mean,
		Std:   std,
		Min:   lo,
		Max:   hi,
		Range: hi - lo,
	}
	if mean > 0 {
		s.ContrastRatio = std / mean
	}
	s.HasHighContrast = s.ContrastRatio > 0.5
	s.HasDarkBackground = mean < 100
	s.HasBrightRegions = hi > 200
	s.Distribution = intensityDistribution(lum, mean)
	return s
}

// intensityDistribution bins the luminance plane into a 50-bucket
// histogram over [0,255] and looks for significant peaks. Two peaks mark
// the bimodal pattern typical of CT and MR slices.
func intensityDistribution(lum []float64, mean float64) IntensityDistribution {
	const bins = 50
	var hist [bins]float64
	for _, v := range lum {
		idx := int(v * bins / 255)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		hist[idx]++
	}
	total := float64(len(lum))
	for i := range hist {
		hist[i] /= total
	}

	peaks := 0
	for i := 1; i < bins-1; i++ {
		if hist[i] > hist[i-1] && hist[i] > hist[i+1] && hist[i] > 0.02 {
			peaks++
		}
	}

	return IntensityDistribution{
		NumPeaks:            peaks,
		Bimodal:             peaks == 2,
		BackgroundPeakRatio: hist[0],
		Skewness:            mean - medianOf(lum),
	}
}

func colorStats(p *plane) *ColorStats {
	mr, mg, mb := meanOf(p.r), meanOf(p.g), meanOf(p.b)

	// Population variance over all three planes together.
	n := float64(p.pixels())
	grand := (mr + mg + mb) / 3
	var ss float64
	for i := range p.r {
		dr, dg, db := p.r[i]-grand, p.g[i]-grand, p.b[i]-grand
		ss += dr*dr + dg*dg + db*db
	}

	dominant := 0
	if mg > mr && mg >= mb {
		dominant = 1
	} else if mb > mr && mb > mg {
		dominant = 2
	}

	return &ColorStats{
		MeanRGB:            [3]float64{mr, mg, mb},
		Variance:           ss / (3 * n),
		DominantChannel:    dominant,
		SkinToneLikelihood: skinToneLikelihood(p),
	}
}

// skinToneRange is an inclusive RGB band covering one broad skin tone.
type skinToneRange struct {
	rLo, rHi, gLo, gHi, bLo, bHi float64
}

// Broad bands for light, medium and dark skin tones. The amplified ratio
// keeps partial-frame skin content a usable signal.
var skinToneRanges = []skinToneRange{
	{180, 255, 120, 220, 100, 200},
	{120, 200, 80, 160, 60, 140},
	{60, 140, 40, 100, 30, 80},
}

func skinToneLikelihood(p *plane) float64 {
	n := p.pixels()
	if n == 0 || p.r == nil {
		return 0
	}
	skin := 0
	for _, band := range skinToneRanges {
		for i := 0; i < n; i++ {
			if p.r[i] >= band.rLo && p.r[i] <= band.rHi &&
				p.g[i] >= band.gLo && p.g[i] <= band.gHi &&
				p.b[i] >= band.bLo && p.b[i] <= band.bHi {
				skin++
			}
		}
	}
	return math.Min(1.0, float64(skin)/float64(n)*2)
}

// edgeDensity is the fraction of neighbouring pixel pairs whose first
// difference exceeds half the global standard deviation.
func edgeDensity(p *plane) float64 {
	if p.w < 2 && p.h < 2 {
		return 0
	}
	mean := meanOf(p.lum)
	threshold := stdOf(p.lum, mean) * 0.5

	edges := 0
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w-1; x++ {
			if math.Abs(p.at(x+1, y)-p.at(x, y)) > threshold {
				edges++
			}
		}
	}
	for y := 0; y < p.h-1; y++ {
		for x := 0; x < p.w; x++ {
			if math.Abs(p.at(x, y+1)-p.at(x, y)) > threshold {
				edges++
			}
		}
	}

	totalPairs := p.h*(p.w-1) + (p.h-1)*p.w
	if totalPairs == 0 {
		return 0
	}
	return float64(edges) / float64(totalPairs)
}

// textureComplexity measures how non-uniform the local roughness is: the
// variance of 5x5 window variances normalized by their mean. Smooth tissue
// scores low, speckled content such as ultrasound scores high. Large
// images are subsampled to keep the window scan bounded.
func textureComplexity(p *plane, pixelBudget int) float64 {
	const kernel = 5
	const pad = kernel / 2

	if p.pixels() == 0 {
		return 0
	}

	stride := 1
	if pixelBudget > 0 && p.pixels() > pixelBudget {
		stride = int(math.Ceil(math.Sqrt(float64(p.pixels()) / float64(pixelBudget))))
	}

	var localVars []float64
	var window [kernel * kernel]float64
	for y := 0; y < p.h; y += stride {
		for x := 0; x < p.w; x += stride {
			k := 0
			for dy := -pad; dy <= pad; dy++ {
				for dx := -pad; dx <= pad; dx++ {
					window[k] = p.at(reflectIndex(x+dx, p.w), reflectIndex(y+dy, p.h))
					k++
				}
			}
			m := meanOf(window[:])
			localVars = append(localVars, varOf(window[:], m))
		}
	}
	if len(localVars) == 0 {
		return 0
	}
	m := meanOf(localVars)
	return varOf(localVars, m) / (m + 1e-6)
}

// reflectIndex mirrors an out-of-range index back into [0,n) without
// repeating the border pixel.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// detectRegularPatterns flags grid or document-like content: a central
// crop whose row means or column means barely vary.
func detectRegularPatterns(p *plane) bool {
	if p.pixels() == 0 {
		return false
	}
	sample := p.h
	if p.w < sample {
		sample = p.w
	}
	if sample > 256 {
		sample = 256
	}
	startRow := max(0, p.h/2-sample/2)
	startCol := max(0, p.w/2-sample/2)

	rowMeans := make([]float64, sample)
	colMeans := make([]float64, sample)
	for i := 0; i < sample; i++ {
		var rowSum float64
		for j := 0; j < sample; j++ {
			v := p.at(startCol+j, startRow+i)
			rowSum += v
			colMeans[j] += v
		}
		rowMeans[i] = rowSum / float64(sample)
	}
	for j := range colMeans {
		colMeans[j] /= float64(sample)
	}

	rowMean := meanOf(rowMeans)
	colMean := meanOf(colMeans)
	rowRegularity := stdOf(rowMeans, rowMean) / (rowMean + 1e-6)
	colRegularity := stdOf(colMeans, colMean) / (colMean + 1e-6)

	return rowRegularity < 0.1 || colRegularity < 0.1
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// varOf is the population variance around a precomputed mean.
func varOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(values))
}

func stdOf(values []float64, mean float64) float64 {
	return math.Sqrt(varOf(values, mean))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
