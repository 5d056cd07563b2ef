package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/photo-cull/internal/cull"
)

//go:embed weights.yaml
var weightsYAML []byte

type Config struct {
	Cull      CullConfig
	Embedding EmbeddingConfig
	Weights   WeightsConfig
}

type CullConfig struct {
	BurstGapMS        int     // burst boundary gap (default 700)
	HashThreshold     int     // Hamming distance threshold (default 8)
	SemanticThreshold float64 // cosine similarity threshold (default 0.9)
	Concurrency       int     // parallel burst clustering (default 4)
}

type EmbeddingConfig struct {
	URL string // defaults to http://localhost:8000
	Dim int    // defaults to 768
}

// WeightsConfig is the scoring configuration shipped with the binary. The
// weights are a matter of taste, so they live in an editable yaml rather
// than code.
type WeightsConfig struct {
	Weights struct {
		Sharpness float64 `yaml:"sharpness"`
		Blur      float64 `yaml:"blur"`
		EyesOpen  float64 `yaml:"eyes_open"`
		Exposure  float64 `yaml:"exposure"`
	} `yaml:"weights"`
	Penalties struct {
		MotionBlur float64 `yaml:"motion_blur"`
		FaceBlur   float64 `yaml:"face_blur"`
	} `yaml:"penalties"`
	SharpnessRef float64 `yaml:"sharpness_ref"`
}

// Scoring converts the yaml weights into the scoring configuration the
// pipeline consumes.
func (w WeightsConfig) Scoring() cull.Scoring {
	return cull.Scoring{
		SharpnessWeight:   w.Weights.Sharpness,
		BlurWeight:        w.Weights.Blur,
		EyesOpenWeight:    w.Weights.EyesOpen,
		ExposureWeight:    w.Weights.Exposure,
		MotionBlurPenalty: w.Penalties.MotionBlur,
		FaceBlurPenalty:   w.Penalties.FaceBlur,
		SharpnessRef:      w.SharpnessRef,
	}
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var weights WeightsConfig
	if err := yaml.Unmarshal(weightsYAML, &weights); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded weights.yaml: " + err.Error())
	}
	if err := weights.Scoring().Validate(); err != nil {
		panic(fmt.Sprintf("embedded weights.yaml is invalid: %v", err))
	}

	return &Config{
		Cull: CullConfig{
			BurstGapMS:        envInt("CULL_BURST_GAP_MS", cull.DefaultGapMS),
			HashThreshold:     envInt("CULL_HASH_THRESHOLD", cull.DefaultHashThreshold),
			SemanticThreshold: envFloat("CULL_SEMANTIC_THRESHOLD", cull.DefaultSemanticThreshold),
			Concurrency:       envInt("CULL_CONCURRENCY", 4),
		},
		Embedding: EmbeddingConfig{
			URL: os.Getenv("EMBEDDING_URL"),
			Dim: envInt("EMBEDDING_DIM", 768),
		},
		Weights: weights,
	}
}
