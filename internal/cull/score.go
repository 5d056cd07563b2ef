package cull

import (
	"fmt"
	"math"
)

// MinScore is assigned to images with incomplete metrics. It sits below any
// score a complete record can produce (weighted terms bottom out at 0 and
// penalties top out well under 1), so flagged images never win against a
// scored sibling.
const MinScore = -1.0

// eyesOpenNeutral is the eyes-open term for images without faces. Eyes-open
// is undefined without a face, so faceless images take full credit for the
// term rather than a penalty.
const eyesOpenNeutral = 1.0

// Scoring holds the weights, penalties and normalization reference for the
// quality score. Weights must sum to 1.0 so scores stay comparable across
// runs.
type Scoring struct {
	// Weighted terms: sharpness, inverted blur, eyes-open fraction,
	// exposure quality.
	SharpnessWeight float64
	BlurWeight      float64
	EyesOpenWeight  float64
	ExposureWeight  float64

	// MotionBlurPenalty is subtracted outright when motion blur was detected.
	MotionBlurPenalty float64
	// FaceBlurPenalty scales with how blurred the detected faces are.
	FaceBlurPenalty float64

	// SharpnessRef is the fixed reference scale dividing the raw Laplacian
	// variance. It is a constant, not a per-run statistic, so identical
	// metrics score identically across runs.
	SharpnessRef float64
}

// DefaultScoring returns the documented default configuration. The same
// values ship in config's embedded weights.yaml.
func DefaultScoring() Scoring {
	return Scoring{
		SharpnessWeight:   0.40,
		BlurWeight:        0.20,
		EyesOpenWeight:    0.25,
		ExposureWeight:    0.15,
		MotionBlurPenalty: 0.10,
		FaceBlurPenalty:   0.15,
		SharpnessRef:      1000.0,
	}
}

// Validate checks that the weights form a proper convex combination and the
// reference scale is usable.
func (s Scoring) Validate() error {
	sum := s.SharpnessWeight + s.BlurWeight + s.EyesOpenWeight + s.ExposureWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights sum to %f, want 1.0", sum)
	}
	if s.SharpnessRef <= 0 {
		return fmt.Errorf("sharpness reference %f must be positive", s.SharpnessRef)
	}
	return nil
}

// Score computes the quality score for a single metrics record. The
// computation is pure: identical metrics always yield the identical score.
// An incomplete record yields (MinScore, false) instead of failing, so one
// broken image never aborts the batch.
func (s Scoring) Score(m *Metrics) (float64, bool) {
	if err := m.Validate(); err != nil {
		return MinScore, false
	}

	sharpnessNorm := math.Min(m.Sharpness/s.SharpnessRef, 1.0)

	eyesOpen := eyesOpenNeutral
	if m.FaceCount > 0 {
		eyesOpen = m.EyesOpen
	}

	score := s.SharpnessWeight*sharpnessNorm +
		s.BlurWeight*(1-m.BlurScore) +
		s.EyesOpenWeight*eyesOpen +
		s.ExposureWeight*m.ExposureQuality

	if m.HasMotionBlur {
		score -= s.MotionBlurPenalty
	}
	if m.FaceCount > 0 && len(m.FaceBlurScores) > 0 {
		var sum float64
		for _, b := range m.FaceBlurScores {
			sum += b
		}
		mean := sum / float64(len(m.FaceBlurScores))
		score -= s.FaceBlurPenalty * (1 - mean)
	}

	return score, true
}

// ScoreImages fills in Score and ScoreFlagged for every image in place.
func (s Scoring) ScoreImages(images []Image) {
	for i := range images {
		score, ok := s.Score(images[i].Metrics)
		images[i].Score = score
		images[i].ScoreFlagged = !ok
	}
}
