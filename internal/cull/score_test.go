package cull

import (
	"math"
	"testing"
)

func goodMetrics() *Metrics {
	return &Metrics{
		Sharpness:       800,
		BlurScore:       0.1,
		ExposureQuality: 0.9,
		FaceCount:       2,
		EyesOpen:        1.0,
		FaceBlurScores:  []float64{0.9, 0.8},
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := DefaultScoring()
	m := goodMetrics()

	first, ok1 := s.Score(m)
	second, ok2 := s.Score(m)

	if !ok1 || !ok2 {
		t.Fatal("expected complete metrics to score")
	}
	if first != second {
		t.Errorf("scores differ across runs: %v vs %v", first, second)
	}
}

func TestScoreExpectedValue(t *testing.T) {
	s := DefaultScoring()
	m := &Metrics{
		Sharpness:       500, // 0.5 normalized against the 1000 reference
		BlurScore:       0.2,
		ExposureQuality: 0.8,
		FaceCount:       0,
	}

	score, ok := s.Score(m)
	if !ok {
		t.Fatal("expected complete metrics to score")
	}

	// 0.40*0.5 + 0.20*0.8 + 0.25*1.0 + 0.15*0.8 = 0.73, no penalties.
	want := 0.73
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", score, want)
	}
}

func TestScoreSharpnessClampedAtReference(t *testing.T) {
	s := DefaultScoring()
	atRef := goodMetrics()
	atRef.Sharpness = s.SharpnessRef
	beyond := goodMetrics()
	beyond.Sharpness = s.SharpnessRef * 50

	scoreAt, _ := s.Score(atRef)
	scoreBeyond, _ := s.Score(beyond)

	if scoreAt != scoreBeyond {
		t.Errorf("sharpness beyond the reference changed the score: %f vs %f", scoreAt, scoreBeyond)
	}
}

func TestScoreMotionBlurPenalty(t *testing.T) {
	s := DefaultScoring()
	clean := goodMetrics()
	blurred := goodMetrics()
	blurred.HasMotionBlur = true

	cleanScore, _ := s.Score(clean)
	blurredScore, _ := s.Score(blurred)

	if diff := cleanScore - blurredScore; math.Abs(diff-s.MotionBlurPenalty) > 1e-9 {
		t.Errorf("motion blur penalty = %f, want %f", diff, s.MotionBlurPenalty)
	}
}

func TestScoreFaceBlurPenalty(t *testing.T) {
	s := DefaultScoring()
	sharp := goodMetrics()
	sharp.FaceBlurScores = []float64{1.0, 1.0}
	soft := goodMetrics()
	soft.FaceBlurScores = []float64{0.5, 0.5}

	sharpScore, _ := s.Score(sharp)
	softScore, _ := s.Score(soft)

	// Mean face blur 0.5 costs half the face blur penalty.
	if diff := sharpScore - softScore; math.Abs(diff-s.FaceBlurPenalty*0.5) > 1e-9 {
		t.Errorf("face blur penalty = %f, want %f", diff, s.FaceBlurPenalty*0.5)
	}
}

func TestScoreNeutralEyesWithoutFaces(t *testing.T) {
	s := DefaultScoring()
	noFaces := &Metrics{Sharpness: 500, BlurScore: 0.2, ExposureQuality: 0.8}
	openEyes := &Metrics{Sharpness: 500, BlurScore: 0.2, ExposureQuality: 0.8,
		FaceCount: 1, EyesOpen: 1.0, FaceBlurScores: []float64{1.0}}

	a, _ := s.Score(noFaces)
	b, _ := s.Score(openEyes)

	// Eyes-open is undefined without a face; a faceless image takes the
	// same eyes term as a fully open-eyed portrait with sharp faces.
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("faceless image scored %f, open-eyed portrait %f", a, b)
	}
}

func TestScoreIncompleteMetrics(t *testing.T) {
	s := DefaultScoring()
	tests := []struct {
		name string
		m    *Metrics
	}{
		{"nil metrics", nil},
		{"negative sharpness", &Metrics{Sharpness: -1, BlurScore: 0.5, ExposureQuality: 0.5}},
		{"blur out of range", &Metrics{Sharpness: 100, BlurScore: 1.5, ExposureQuality: 0.5}},
		{"exposure out of range", &Metrics{Sharpness: 100, BlurScore: 0.5, ExposureQuality: -0.1}},
		{"negative face count", &Metrics{Sharpness: 100, BlurScore: 0.5, ExposureQuality: 0.5, FaceCount: -1}},
		{"face blur length mismatch", &Metrics{Sharpness: 100, BlurScore: 0.5, ExposureQuality: 0.5,
			FaceCount: 2, EyesOpen: 1, FaceBlurScores: []float64{0.5}}},
		{"eyes open out of range", &Metrics{Sharpness: 100, BlurScore: 0.5, ExposureQuality: 0.5,
			FaceCount: 1, EyesOpen: 2, FaceBlurScores: []float64{0.5}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := s.Score(tc.m)
			if ok {
				t.Error("expected incomplete metrics to be rejected")
			}
			if score != MinScore {
				t.Errorf("score = %f, want MinScore %f", score, MinScore)
			}
		})
	}
}

func TestScoreMinScoreBelowAnyCompleteScore(t *testing.T) {
	s := DefaultScoring()
	worst := &Metrics{
		Sharpness:       0,
		BlurScore:       1,
		ExposureQuality: 0,
		HasMotionBlur:   true,
		FaceCount:       1,
		EyesOpen:        0,
		FaceBlurScores:  []float64{0},
	}

	score, ok := s.Score(worst)
	if !ok {
		t.Fatal("worst-case metrics are still complete")
	}
	if score <= MinScore {
		t.Errorf("complete score %f not above MinScore %f", score, MinScore)
	}
}

func TestScoringValidate(t *testing.T) {
	if err := DefaultScoring().Validate(); err != nil {
		t.Errorf("default scoring invalid: %v", err)
	}

	bad := DefaultScoring()
	bad.SharpnessWeight = 0.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for weights not summing to 1")
	}

	noRef := DefaultScoring()
	noRef.SharpnessRef = 0
	if err := noRef.Validate(); err == nil {
		t.Error("expected error for zero sharpness reference")
	}
}

func TestScoreImagesFlagsIncomplete(t *testing.T) {
	s := DefaultScoring()
	images := []Image{
		{Path: "/photos/ok.jpg", Metrics: goodMetrics()},
		{Path: "/photos/broken.jpg"},
	}

	s.ScoreImages(images)

	if images[0].ScoreFlagged {
		t.Error("complete image flagged")
	}
	if !images[1].ScoreFlagged {
		t.Error("incomplete image not flagged")
	}
	if images[1].Score != MinScore {
		t.Errorf("incomplete image score = %f, want %f", images[1].Score, MinScore)
	}
	if images[0].Score <= images[1].Score {
		t.Error("complete image should outscore the flagged one")
	}
}
