package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// grayPlane builds a single-channel plane filled with v.
func grayPlane(w, h int, v float64) *plane {
	p := &plane{w: w, h: h, nativeGray: true, mode: "L", format: "png"}
	p.lum = make([]float64, w*h)
	for i := range p.lum {
		p.lum[i] = v
	}
	return p
}

// colorPlane builds an RGB plane filled with one color.
func colorPlane(w, h int, r, g, b float64) *plane {
	n := w * h
	p := &plane{w: w, h: h, mode: "RGBA", format: "png"}
	p.r = make([]float64, n)
	p.g = make([]float64, n)
	p.b = make([]float64, n)
	p.lum = make([]float64, n)
	for i := 0; i < n; i++ {
		p.r[i], p.g[i], p.b[i] = r, g, b
		p.lum[i] = (r + g + b) / 3
	}
	return p
}

func (p *plane) setRGB(x, y int, r, g, b float64) {
	i := y*p.w + x
	p.r[i], p.g[i], p.b[i] = r, g, b
	p.lum[i] = (r + g + b) / 3
}

func encodePNG(tb testing.TB, img image.Image) []byte {
	tb.Helper()
	var buf bytes.Buffer
	require.NoError(tb, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePlane_GrayPNG(t *testing.T) {
	req := require.New(t)

	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(10 * (y*4 + x + 1))})
		}
	}

	p, err := decodePlane(encodePNG(t, img))
	req.NoError(err)
	req.Equal(4, p.w)
	req.Equal(3, p.h)
	req.Equal("L", p.mode)
	req.Equal("png", p.format)
	req.True(p.nativeGray)
	req.Nil(p.r)
	req.Equal(10.0, p.lum[0])
	req.Equal(120.0, p.lum[11])
	req.Equal(70.0, p.at(2, 1))
}

func TestDecodePlane_ColorPNG(t *testing.T) {
	req := require.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	p, err := decodePlane(encodePNG(t, img))
	req.NoError(err)
	req.Equal("RGBA", p.mode)
	req.False(p.nativeGray)
	req.Equal([]float64{255, 0, 0, 255}, p.r)
	req.Equal([]float64{0, 255, 0, 255}, p.g)
	req.Equal([]float64{0, 0, 255, 255}, p.b)
	req.InDelta(85.0, p.lum[0], 1e-9)
	req.Equal(255.0, p.lum[3])
}

func TestDecodePlane_OtherFormats(t *testing.T) {
	req := require.New(t)

	rgb := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			rgb.Set(x, y, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
		}
	}

	var jpegBuf bytes.Buffer
	req.NoError(jpeg.Encode(&jpegBuf, rgb, nil))
	p, err := decodePlane(jpegBuf.Bytes())
	req.NoError(err)
	req.Equal("RGB", p.mode)
	req.Equal("jpeg", p.format)
	req.Equal(8, p.w)

	paletted := image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black, color.White})
	var gifBuf bytes.Buffer
	req.NoError(gif.Encode(&gifBuf, paletted, nil))
	p, err = decodePlane(gifBuf.Bytes())
	req.NoError(err)
	req.Equal("P", p.mode)
	req.Equal("gif", p.format)

	var bmpBuf bytes.Buffer
	req.NoError(bmp.Encode(&bmpBuf, rgb))
	p, err = decodePlane(bmpBuf.Bytes())
	req.NoError(err)
	req.Equal("bmp", p.format)
}

func TestDecodePlane_Garbage(t *testing.T) {
	req := require.New(t)
	_, err := decodePlane([]byte("definitely not pixels"))
	req.Error(err)
}

func TestDetectGrayscale(t *testing.T) {
	req := require.New(t)
	tun := DefaultTunables()

	req.True(detectGrayscale(grayPlane(4, 4, 77), tun))
	req.True(detectGrayscale(colorPlane(4, 4, 120, 120, 120), tun))
	req.False(detectGrayscale(colorPlane(4, 4, 130, 125, 120), tun))
	// The threshold is strict: a mean difference of exactly 2 is color.
	req.False(detectGrayscale(colorPlane(4, 4, 122, 120, 120), tun))
}

func TestIntensityStats(t *testing.T) {
	req := require.New(t)

	s := intensityStats([]float64{0, 50, 100, 150, 200})
	req.InDelta(100.0, s.Mean, 1e-9)
	req.InDelta(70.7107, s.Std, 1e-3)
	req.Equal(0.0, s.Min)
	req.Equal(200.0, s.Max)
	req.Equal(200.0, s.Range)
	req.InDelta(0.7071, s.ContrastRatio, 1e-3)
	req.True(s.HasHighContrast)
	req.False(s.HasDarkBackground) // mean of exactly 100 is not dark
	req.False(s.HasBrightRegions)  // max of exactly 200 is not bright

	req.Equal(IntensityStats{}, intensityStats(nil))
}

func TestIntensityDistribution(t *testing.T) {
	req := require.New(t)

	bimodal := make([]float64, 0, 1000)
	for i := 0; i < 600; i++ {
		bimodal = append(bimodal, 20)
	}
	for i := 0; i < 400; i++ {
		bimodal = append(bimodal, 220)
	}
	d := intensityDistribution(bimodal, meanOf(bimodal))
	req.Equal(2, d.NumPeaks)
	req.True(d.Bimodal)
	req.Equal(0.0, d.BackgroundPeakRatio)
	req.InDelta(80.0, d.Skewness, 1e-9) // mean 100, median 20

	uniform := make([]float64, 100)
	for i := range uniform {
		uniform[i] = 128
	}
	d = intensityDistribution(uniform, 128)
	req.Equal(1, d.NumPeaks)
	req.False(d.Bimodal)

	// Max intensity lands in the last bin, which peak scanning skips.
	saturated := make([]float64, 300)
	for i := range saturated {
		saturated[i] = 255
	}
	d = intensityDistribution(saturated, 255)
	req.Equal(0, d.NumPeaks)
}

func TestEdgeDensity_StepImage(t *testing.T) {
	req := require.New(t)

	p := grayPlane(10, 10, 0)
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			p.lum[y*10+x] = 255
		}
	}
	// One crossing pair per row out of 180 neighbour pairs.
	req.InDelta(10.0/180.0, edgeDensity(p), 1e-9)

	req.Equal(0.0, edgeDensity(grayPlane(1, 1, 50)))
}

func TestTextureComplexity(t *testing.T) {
	req := require.New(t)

	req.Equal(0.0, textureComplexity(grayPlane(8, 8, 130), 0))

	// A full checkerboard has the same variance in every window; mixing a
	// flat half with a speckled half makes the window variances spread.
	mixed := grayPlane(16, 16, 128)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			if (x+y)%2 == 0 {
				mixed.lum[y*16+x] = 255
			} else {
				mixed.lum[y*16+x] = 0
			}
		}
	}
	req.Greater(textureComplexity(mixed, 0), 0.0)

	// Subsampling keeps the result finite and non-negative.
	req.GreaterOrEqual(textureComplexity(mixed, 16), 0.0)
}

func TestReflectIndex(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{-3, 3, 1},
		{7, 1, 0},
	}
	for _, tt := range tests {
		req.Equal(tt.want, reflectIndex(tt.i, tt.n), "reflectIndex(%d, %d)", tt.i, tt.n)
	}
}

func TestDetectRegularPatterns(t *testing.T) {
	req := require.New(t)

	req.True(detectRegularPatterns(grayPlane(50, 50, 180)))

	gradient := grayPlane(100, 100, 0)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			gradient.lum[y*100+x] = float64(x + y)
		}
	}
	req.False(detectRegularPatterns(gradient))
}

func TestSkinToneLikelihood(t *testing.T) {
	req := require.New(t)

	// A tone inside two bands counts twice and saturates the ratio.
	req.Equal(1.0, skinToneLikelihood(colorPlane(10, 10, 200, 150, 120)))
	req.Equal(0.0, skinToneLikelihood(colorPlane(10, 10, 50, 50, 200)))

	quarter := colorPlane(20, 20, 50, 50, 200)
	for y := 0; y < 5; y++ {
		for x := 0; x < 20; x++ {
			quarter.setRGB(x, y, 250, 130, 110) // single-band tone
		}
	}
	req.InDelta(0.5, skinToneLikelihood(quarter), 1e-9)
}

func TestColorStats(t *testing.T) {
	req := require.New(t)

	cs := colorStats(colorPlane(4, 4, 200, 150, 120))
	req.Equal([3]float64{200, 150, 120}, cs.MeanRGB)
	req.InDelta(1088.9, cs.Variance, 0.1)
	req.Equal(0, cs.DominantChannel)

	req.Equal(1, colorStats(colorPlane(4, 4, 10, 200, 10)).DominantChannel)
	req.Equal(2, colorStats(colorPlane(4, 4, 10, 20, 200)).DominantChannel)
	req.Equal(0, colorStats(colorPlane(4, 4, 90, 90, 90)).DominantChannel)
}

func TestStatHelpers(t *testing.T) {
	req := require.New(t)

	req.Equal(0.0, meanOf(nil))
	req.InDelta(2.5, meanOf([]float64{1, 2, 3, 4}), 1e-9)
	// Population variance, not the sample estimator.
	req.InDelta(1.25, varOf([]float64{1, 2, 3, 4}, 2.5), 1e-9)

	lo, hi := minMax([]float64{3, -1, 7, 2})
	req.Equal(-1.0, lo)
	req.Equal(7.0, hi)

	req.Equal(2.0, medianOf([]float64{3, 1, 2}))
	req.Equal(2.5, medianOf([]float64{4, 1, 2, 3}))
	req.Equal(0.0, medianOf(nil))
}
