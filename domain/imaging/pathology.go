package imaging

import "math"

// radiologicalTypes share the conservative radiological assessment. Most
// patient-uploaded X-rays document past care rather than active diagnosis,
// so these analyzers flag only very obvious complexity.
var radiologicalTypes = map[Type]bool{
	TypeChestXRay:    true,
	TypeCT:           true,
	TypeMR:           true,
	TypeRadiological: true,
}

// analyzePathology routes the image to the analyzer matching its medical
// type. Types without a dedicated analyzer get the minimal assessment,
// tagged analysis_limited so consumers know no real screening ran.
func analyzePathology(p *plane, t Type, c *Characteristics, tun Tunables) Findings {
	switch {
	case t == TypeDermatology:
		return analyzeDermPathology(p, c, tun)
	case radiologicalTypes[t]:
		return analyzeRadiologicalPathology(c, tun)
	case t == TypeClinicalPhoto:
		return analyzeClinicalPhotoPathology(c, tun)
	case t == TypePathology:
		return analyzeHistologicalPathology()
	}
	return Findings{
		SpecificFindings:     []string{},
		NormalIndicators:     []string{"analysis_limited"},
		ClinicalSignificance: SignificanceRoutine,
	}
}

// analyzeDermPathology scores a skin image for condition signals. Each
// signal contributes a fixed weight; the sum decides between routine
// documentation, follow-up and active monitoring. The weights favour
// sensitivity for subtle conditions like rosacea and hypopigmentation.
func analyzeDermPathology(p *plane, c *Characteristics, tun Tunables) Findings {
	f := Findings{
		SpecificFindings:     []string{},
		NormalIndicators:     []string{},
		ClinicalSignificance: SignificanceSkinDocumentation,
	}
	if p.r == nil {
		return f
	}

	var score float64

	colorVar := colorVariance(p)
	switch {
	case colorVar > tun.DermColorVarHigh:
		score += 0.25
		f.SpecificFindings = append(f.SpecificFindings, "color_variation")
	case colorVar < tun.DermColorVarNormal:
		f.NormalIndicators = append(f.NormalIndicators, "uniform_coloration")
	}

	redness := rednessScore(p)
	switch {
	case redness > tun.DermRednessHigh:
		score += 0.3
		f.SpecificFindings = append(f.SpecificFindings, "redness_pattern")
	case redness < tun.DermRednessNormal:
		f.NormalIndicators = append(f.NormalIndicators, "normal_coloration")
	}

	veryDark, veryBright := extremeRegionFractions(p.lum, c.Intensity.Mean, c.Intensity.Std)
	switch {
	case veryDark > tun.DermExtremeRegion:
		score += 0.25
		f.SpecificFindings = append(f.SpecificFindings, "hyperpigmentation_areas")
	case veryDark < tun.DermConsistentDark:
		f.NormalIndicators = append(f.NormalIndicators, "consistent_pigmentation")
	}
	if veryBright > tun.DermExtremeRegion {
		score += 0.25
		f.SpecificFindings = append(f.SpecificFindings, "hypopigmentation_areas")
	}

	switch {
	case c.Texture.EdgeDensity > tun.DermEdgeHigh:
		score += 0.2
		f.SpecificFindings = append(f.SpecificFindings, "defined_borders")
	case c.Texture.EdgeDensity < tun.DermEdgeNormal:
		f.NormalIndicators = append(f.NormalIndicators, "smooth_texture")
	}

	switch {
	case c.Texture.TextureComplexity > tun.DermTextureHigh:
		score += 0.2
		f.SpecificFindings = append(f.SpecificFindings, "texture_irregularity")
	case c.Texture.TextureComplexity < tun.DermTextureNormal:
		f.NormalIndicators = append(f.NormalIndicators, "normal_texture")
	}

	if countPotentialLesions(p.lum, p.w, p.h) > 0 {
		score += 0.25
		f.SpecificFindings = append(f.SpecificFindings, "potential_lesions")
	} else {
		f.NormalIndicators = append(f.NormalIndicators, "no_obvious_lesions")
	}

	if skinToneVariation(p) > tun.DermToneVariation {
		score += 0.2
		f.SpecificFindings = append(f.SpecificFindings, "skin_tone_variation")
	}

	f.PathologicalConfidence = math.Min(1.0, score)
	switch {
	case score > tun.DermScoreMonitoring:
		f.HasPathologicalFindings = true
		f.ClinicalSignificance = SignificanceMonitoring
	case score > tun.DermScoreFollowUp:
		f.HasPathologicalFindings = true
		f.ClinicalSignificance = SignificanceFollowUp
	default:
		f.ClinicalSignificance = SignificanceRoutineSkin
	}
	return f
}

func analyzeRadiologicalPathology(c *Characteristics, tun Tunables) Findings {
	f := Findings{
		SpecificFindings:     []string{},
		NormalIndicators:     []string{"routine_imaging"},
		ClinicalSignificance: SignificanceScreening,
	}
	if c.Texture.EdgeDensity > tun.RadioEdgeDensity && c.Texture.TextureComplexity > tun.RadioTexture {
		f.PathologicalConfidence = 0.3
		f.SpecificFindings = append(f.SpecificFindings, "image_complexity")
		f.ClinicalSignificance = SignificanceProfessionalReview
	}
	return f
}

func analyzeClinicalPhotoPathology(c *Characteristics, tun Tunables) Findings {
	f := Findings{
		SpecificFindings:     []string{},
		NormalIndicators:     []string{"clinical_documentation"},
		ClinicalSignificance: SignificanceRoutine,
	}
	var colorVar float64
	if c.Color != nil {
		colorVar = c.Color.Variance
	}
	if colorVar > tun.PhotoColorVar && c.Texture.EdgeDensity > tun.PhotoEdgeDensity {
		f.PathologicalConfidence = 0.2
		f.SpecificFindings = append(f.SpecificFindings, "visual_variation")
		f.ClinicalSignificance = SignificanceClinicalCorrelation
	}
	return f
}

// Histology slides exist to be diagnosed, so the assessment is fixed.
func analyzeHistologicalPathology() Findings {
	return Findings{
		HasPathologicalFindings: true,
		PathologicalConfidence:  0.8,
		SpecificFindings:        []string{"histological_analysis"},
		NormalIndicators:        []string{},
		ClinicalSignificance:    SignificancePathological,
	}
}

// colorVariance is the population variance over all three color planes
// pooled together.
func colorVariance(p *plane) float64 {
	n := p.pixels()
	if n == 0 || p.r == nil {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += p.r[i] + p.g[i] + p.b[i]
	}
	grand := sum / float64(3*n)

	var ss float64
	for i := 0; i < n; i++ {
		dr, dg, db := p.r[i]-grand, p.g[i]-grand, p.b[i]-grand
		ss += dr*dr + dg*dg + db*db
	}
	return ss / float64(3*n)
}

// rednessScore combines mean R/(G+B) dominance with the fraction of
// outlier-red area, weighted 0.7/0.3. Targets rosacea and irritation.
func rednessScore(p *plane) float64 {
	n := p.pixels()
	if n == 0 || p.r == nil {
		return 0
	}
	ratio := make([]float64, n)
	for i := 0; i < n; i++ {
		ratio[i] = p.r[i] / (p.g[i] + p.b[i] + 1)
	}
	mean := meanOf(ratio)
	threshold := mean + stdOf(ratio, mean)

	high := 0
	for _, v := range ratio {
		if v > threshold {
			high++
		}
	}
	score := mean*0.7 + float64(high)/float64(n)*0.3
	return math.Min(1.0, score)
}

// extremeRegionFractions returns the fractions of pixels more than 1.5
// standard deviations below and above the mean.
func extremeRegionFractions(lum []float64, mean, std float64) (dark, bright float64) {
	if len(lum) == 0 {
		return 0, 0
	}
	lo, hi := mean-1.5*std, mean+1.5*std
	darkCount, brightCount := 0, 0
	for _, v := range lum {
		if v < lo {
			darkCount++
		}
		if v > hi {
			brightCount++
		}
	}
	n := float64(len(lum))
	return float64(darkCount) / n, float64(brightCount) / n
}

// skinToneVariation approximates local pigmentation change as the mean
// first-difference of perceptual luminance, normalized and amplified.
func skinToneVariation(p *plane) float64 {
	if p.r == nil || p.pixels() == 0 {
		return 0
	}
	lum := make([]float64, p.pixels())
	for i := range lum {
		lum[i] = 0.299*p.r[i] + 0.587*p.g[i] + 0.114*p.b[i]
	}

	var sumX float64
	countX := 0
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w-1; x++ {
			sumX += math.Abs(lum[y*p.w+x+1] - lum[y*p.w+x])
			countX++
		}
	}
	var sumY float64
	countY := 0
	for y := 0; y < p.h-1; y++ {
		for x := 0; x < p.w; x++ {
			sumY += math.Abs(lum[(y+1)*p.w+x] - lum[y*p.w+x])
			countY++
		}
	}

	var meanX, meanY float64
	if countX > 0 {
		meanX = sumX / float64(countX)
	}
	if countY > 0 {
		meanY = sumY / float64(countY)
	}
	variation := (meanX + meanY) / 255.0
	return math.Min(1.0, variation*2)
}

// countPotentialLesions thresholds regions well below the mean intensity
// and counts 4-connected components between 0.1% and 20% of the frame.
// Tiny specks and background-scale blobs are ignored.
func countPotentialLesions(lum []float64, w, h int) int {
	n := len(lum)
	if n == 0 {
		return 0
	}
	mean := meanOf(lum)
	threshold := mean - 1.5*stdOf(lum, mean)

	mask := make([]bool, n)
	for i, v := range lum {
		mask[i] = v < threshold
	}

	visited := make([]bool, n)
	queue := make([]int, 0, 64)
	lesions := 0
	for start := 0; start < n; start++ {
		if !mask[start] || visited[start] {
			continue
		}
		size := 0
		visited[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++

			x, y := idx%w, idx/w
			if x > 0 && mask[idx-1] && !visited[idx-1] {
				visited[idx-1] = true
				queue = append(queue, idx-1)
			}
			if x < w-1 && mask[idx+1] && !visited[idx+1] {
				visited[idx+1] = true
				queue = append(queue, idx+1)
			}
			if y > 0 && mask[idx-w] && !visited[idx-w] {
				visited[idx-w] = true
				queue = append(queue, idx-w)
			}
			if y < h-1 && mask[idx+w] && !visited[idx+w] {
				visited[idx+w] = true
				queue = append(queue, idx+w)
			}
		}

		ratio := float64(size) / float64(n)
		if ratio > 0.001 && ratio < 0.2 {
			lesions++
		}
	}
	return lesions
}
