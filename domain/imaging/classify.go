package imaging

import "math"

// classifyContent assigns a medical type from pixel content alone. This
// path carries the weight for patient uploads, where filenames are
// usually IMG_xxxx.jpg and say nothing.
func classifyContent(p *plane, grayscale bool, aspectRatio float64, c *Characteristics, tun Tunables) Type {
	if grayscale {
		return classifyGrayscale(p, aspectRatio, c, tun)
	}
	return classifyColor(p, c, tun)
}

func classifyGrayscale(p *plane, aspectRatio float64, c *Characteristics, tun Tunables) Type {
	in := c.Intensity
	tx := c.Texture
	w, h := p.w, p.h

	switch {
	// High resolution, high contrast on a dark background reads as an
	// X-ray family image.
	case (w > tun.HighResSide || h > tun.HighResSide) && in.HasHighContrast && in.HasDarkBackground:
		switch {
		case aspectRatio > tun.LandscapeAspect:
			return TypeChestXRay
		case aspectRatio >= tun.SquareAspectLow && aspectRatio <= tun.SquareAspectHigh:
			return TypeRadiological
		default:
			return TypeRadiograph
		}

	// Square mid-resolution images with a bimodal histogram read as
	// cross-sectional slices. Edge density separates CT from MR.
	case w >= tun.MidResSide && h >= tun.MidResSide && in.Distribution.Bimodal:
		if aspectRatio >= tun.SquareAspectLow && aspectRatio <= tun.SquareAspectHigh {
			if tx.EdgeDensity > tun.CTEdgeDensity {
				return TypeCT
			}
			return TypeMR
		}
		return TypeRadiological

	case tx.TextureComplexity > tun.UltrasoundTexture && !in.HasHighContrast:
		return TypeUltrasound

	case w < tun.MidResSide || h < tun.MidResSide:
		if in.HasHighContrast {
			return TypeRadiograph
		}
		return TypeClinicalPhoto

	default:
		return TypeRadiograph
	}
}

func classifyColor(p *plane, c *Characteristics, tun Tunables) Type {
	w, h := p.w, p.h

	switch {
	case c.Color.SkinToneLikelihood > tun.SkinToneLikelihood:
		if hasDermatologicalTraits(p, c) {
			return TypeDermatology
		}
		return TypeClinicalPhoto

	case hasOphthalmologicalTraits(p, c):
		return TypeRetinal

	case hasPathologicalTraits(c):
		return TypePathology

	case hasEndoscopicTraits(p, c):
		return TypeEndoscopy

	case w > tun.HighResClinicalSide || h > tun.HighResClinicalSide:
		return TypeHighResPhoto

	case hasDocumentTraits(p, c):
		return TypeDocument

	default:
		return TypeClinicalPhoto
	}
}

// hasDermatologicalTraits confirms a skin-dominated image really is a
// dermatological shot and not just a portrait.
func hasDermatologicalTraits(p *plane, c *Characteristics) bool {
	skin := c.Color.SkinToneLikelihood

	if skin > 0.5 {
		return true
	}
	if skin > 0.2 && c.Texture.TextureComplexity > 0.5 {
		return true
	}

	// Darker regions on a skin background hint at lesions.
	if skin > 0.1 {
		mean := c.Intensity.Mean
		dark := 0
		for _, v := range p.lum {
			if v < mean*0.7 {
				dark++
			}
		}
		if float64(dark)/float64(p.pixels()) > 0.05 {
			return true
		}
	}
	return false
}

// hasOphthalmologicalTraits looks for the dark circular border of fundus
// photographs, then for red-channel dominance.
func hasOphthalmologicalTraits(p *plane, c *Characteristics) bool {
	w, h := p.w, p.h
	cx, cy := w/2, h/2

	darkEdge, samples := 0, 0
	for i := 0; i < 16; i++ {
		angle := 2 * math.Pi * float64(i) / 15
		x := int(float64(cx) + 0.4*float64(w)*math.Cos(angle))
		y := int(float64(cy) + 0.4*float64(h)*math.Sin(angle))
		if x >= 0 && x < w && y >= 0 && y < h {
			if p.at(x, y) < 50 {
				darkEdge++
			}
			samples++
		}
	}
	if samples > 0 && float64(darkEdge)/float64(samples) > 0.6 {
		return true
	}

	rgb := c.Color.MeanRGB
	if rgb[0] > rgb[1] && rgb[0] > rgb[2] &&
		rgb[0] > rgb[1]*1.2 && rgb[0] > rgb[2]*1.2 {
		return true
	}
	return false
}

// hasPathologicalTraits detects microscopy content, including the pink
// and purple signature of H&E staining.
func hasPathologicalTraits(c *Characteristics) bool {
	if c.Texture.TextureComplexity > 2.0 && c.Color.Variance > 1000 {
		return true
	}
	if c.Texture.EdgeDensity > 0.15 && c.Texture.TextureComplexity > 1.5 {
		return true
	}

	rgb := c.Color.MeanRGB
	hasPink := rgb[0] > 150 && rgb[1] < rgb[0]*0.8
	hasPurple := rgb[2] > 120 && rgb[0] < rgb[2]*0.9
	return hasPink || hasPurple
}

// hasEndoscopicTraits detects the dark vignette corners and reddish
// tissue tones of endoscope frames.
func hasEndoscopicTraits(p *plane, c *Characteristics) bool {
	w, h := p.w, p.h
	corners := [8][2]int{
		{0, 0}, {0, w - 1}, {h - 1, 0}, {h - 1, w - 1},
		{h / 4, w / 4}, {h / 4, 3 * w / 4},
		{3 * h / 4, w / 4}, {3 * h / 4, 3 * w / 4},
	}
	darkCorners := 0
	for _, yx := range corners {
		if p.at(yx[1], yx[0]) < 30 {
			darkCorners++
		}
	}
	if darkCorners >= 4 {
		return true
	}

	rgb := c.Color.MeanRGB
	return rgb[0] > 100 && rgb[0] > rgb[1]*1.1
}

// hasDocumentTraits detects photographed lab reports: regular text-line
// patterns or a bright background with a text-like share of dark pixels.
func hasDocumentTraits(p *plane, c *Characteristics) bool {
	if c.Texture.HasRegularPatterns && c.Texture.EdgeDensity > 0.05 {
		return true
	}

	rowMeans := make([]float64, p.h)
	for y := 0; y < p.h; y++ {
		rowMeans[y] = meanOf(p.lum[y*p.w : (y+1)*p.w])
	}
	if varOf(rowMeans, meanOf(rowMeans)) > 100 {
		return true
	}

	if c.Intensity.Mean > 200 {
		dark := 0
		for _, v := range p.lum {
			if v < 100 {
				dark++
			}
		}
		frac := float64(dark) / float64(p.pixels())
		if frac > 0.05 && frac < 0.3 {
			return true
		}
	}
	return false
}
