// Package cull implements the photo culling pipeline: burst grouping by
// capture time, near-duplicate clustering by perceptual hash distance,
// optional cross-burst semantic merging, quality scoring and winner
// selection. The pipeline consumes images whose metrics were produced by an
// external feature extractor and emits a Report.
package cull

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the pipeline and the promote operation.
var (
	// ErrInvalidInput is returned when there is nothing to process.
	ErrInvalidInput = errors.New("no images to process")

	// ErrMissingEmbeddings is returned when semantic merge is requested but
	// not every image carries an embedding.
	ErrMissingEmbeddings = errors.New("semantic merge requires embeddings for all images")

	// ErrClusterNotFound is returned by Promote for an unknown cluster id.
	ErrClusterNotFound = errors.New("cluster not found")

	// ErrNotAMember is returned by Promote when the path is not a member of
	// the cluster. The report is left unmodified.
	ErrNotAMember = errors.New("image is not a member of the cluster")
)

// Metrics holds the per-image quality measurements produced by the external
// feature extractor. All fields are expected to be populated for a
// successfully processed image; the scorer treats out-of-range or
// inconsistent values as an incomplete record.
type Metrics struct {
	Sharpness       float64   `json:"sharpness"`        // variance of Laplacian, >= 0
	BlurScore       float64   `json:"blur_score"`       // 0 (sharp) .. 1 (blurred)
	IsBlurry        bool      `json:"is_blurry"`
	HasMotionBlur   bool      `json:"has_motion_blur"`
	ExposureQuality float64   `json:"exposure_quality"` // 0 (clipped) .. 1 (good)
	FaceCount       int       `json:"face_count"`
	EyesOpen        float64   `json:"eyes_open"`        // fraction of open-eyed faces, meaningless when FaceCount == 0
	FaceBlurScores  []float64 `json:"face_blur_scores"` // one per face, 0 (blurred) .. 1 (sharp)
}

// Validate reports whether the record is complete and internally consistent.
// A nil receiver means the extractor produced no metrics at all.
func (m *Metrics) Validate() error {
	if m == nil {
		return errors.New("metrics missing")
	}
	if m.Sharpness < 0 {
		return fmt.Errorf("sharpness %f out of range", m.Sharpness)
	}
	if m.BlurScore < 0 || m.BlurScore > 1 {
		return fmt.Errorf("blur_score %f out of range", m.BlurScore)
	}
	if m.ExposureQuality < 0 || m.ExposureQuality > 1 {
		return fmt.Errorf("exposure_quality %f out of range", m.ExposureQuality)
	}
	if m.FaceCount < 0 {
		return fmt.Errorf("face_count %d out of range", m.FaceCount)
	}
	if m.FaceCount > 0 {
		if m.EyesOpen < 0 || m.EyesOpen > 1 {
			return fmt.Errorf("eyes_open %f out of range", m.EyesOpen)
		}
		if len(m.FaceBlurScores) != m.FaceCount {
			return fmt.Errorf("face_blur_scores has %d entries for %d faces", len(m.FaceBlurScores), m.FaceCount)
		}
		for i, s := range m.FaceBlurScores {
			if s < 0 || s > 1 {
				return fmt.Errorf("face_blur_scores[%d] = %f out of range", i, s)
			}
		}
	}
	return nil
}

// Image is a single input photo with its fingerprints, capture time and
// extractor metrics. Score and ScoreFlagged are filled in by the scorer.
type Image struct {
	Path      string    `json:"path"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Timestamp time.Time `json:"timestamp"`

	PHash     string `json:"phash"`
	DHash     string `json:"dhash"`
	PHashBits uint64 `json:"-"` // Raw pHash for comparison
	DHashBits uint64 `json:"-"` // Raw dHash for comparison

	*Metrics

	// Embedding is the optional semantic embedding vector. Present for every
	// image when the extractor runs in semantic mode, absent otherwise.
	Embedding []float32 `json:"embedding,omitempty"`

	Score float64 `json:"score"`
	// ScoreFlagged marks images whose metrics were incomplete and which were
	// therefore assigned the minimum score.
	ScoreFlagged bool `json:"score_flagged,omitempty"`

	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}

// Hashable reports whether the image carries usable perceptual hashes.
// Images without hashes always form singleton clusters.
func (img *Image) Hashable() bool {
	return img.PHash != "" && img.DHash != ""
}

// Burst is a temporally contiguous run of images, stored as indices into the
// report's image list in capture-time order. Its id is its position in the
// report's burst list.
type Burst struct {
	ID      int   `json:"-"`
	Members []int `json:"-"`
}

// Bursts serialize as bare index arrays; the id is the array position.

func (b Burst) MarshalJSON() ([]byte, error) {
	if b.Members == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.Members)
}

func (b *Burst) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.Members)
}

// Cluster is a group of near-duplicate images with one selected winner.
// Members and Scores are parallel arrays in discovery order. After a
// semantic merge a cluster may span several bursts; BurstIDs always contains
// BurstID and has length 1 unless clusters were merged.
type Cluster struct {
	ID       int       `json:"cluster_id"`
	BurstID  int       `json:"burst_id"`
	BurstIDs []int     `json:"burst_ids"`
	Members  []string  `json:"members"`
	Scores   []float64 `json:"scores"`
	Winner   string    `json:"winner"`

	// MemberIndexes parallels Members with indices into the report's image
	// list. Used for deterministic tie-breaking; rebuilt on report load.
	MemberIndexes []int `json:"-"`
}

// Contains reports whether the given path is a member of the cluster.
func (c *Cluster) Contains(path string) bool {
	for _, m := range c.Members {
		if m == path {
			return true
		}
	}
	return false
}

// Params records the run parameters in the report for reproducibility.
type Params struct {
	BurstGapMS        int     `json:"burst_gap_ms"`
	HashDistThresh    int     `json:"hash_dist_thresh"`
	WithEmbeddings    bool    `json:"with_embeddings"`
	SemanticThreshold float64 `json:"semantic_threshold,omitempty"`
}
