package cull

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Option defaults, also surfaced as CLI flag defaults.
const (
	// DefaultGapMS is the burst boundary gap in milliseconds.
	DefaultGapMS = 700

	// DefaultHashThreshold is the Hamming distance threshold for
	// near-duplicate edges. The useful range is roughly 4-16.
	DefaultHashThreshold = 8

	// DefaultSemanticThreshold is the minimum cosine similarity between
	// cluster representatives for a cross-burst merge.
	DefaultSemanticThreshold = 0.9
)

// Options configures a pipeline run. Semantic merge is resolved here, at
// construction time: when Semantic is false the merge phase simply does not
// exist for the run.
type Options struct {
	GapMS             int
	HashThreshold     int
	Semantic          bool
	SemanticThreshold float64
	Scoring           Scoring
	Concurrency       int // parallel burst clustering; defaults to 4
}

// DefaultOptions returns a runnable configuration with the documented
// defaults and semantic merge disabled.
func DefaultOptions() Options {
	return Options{
		GapMS:             DefaultGapMS,
		HashThreshold:     DefaultHashThreshold,
		SemanticThreshold: DefaultSemanticThreshold,
		Scoring:           DefaultScoring(),
	}
}

// Run executes the full pipeline over the given images and returns the
// report. The input slice is taken over by the report and scored in place.
//
// Stage order follows the data dependencies: burst grouping is a single
// sequential pass; per-burst clustering and per-image scoring are
// independent and run concurrently; winner selection needs both; semantic
// merge (when enabled) runs last, as a single pass over the complete cluster
// set.
func Run(images []Image, opts Options) (*Report, error) {
	if len(images) == 0 {
		return nil, ErrInvalidInput
	}
	if err := opts.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if opts.Semantic {
		for i := range images {
			if len(images[i].Embedding) == 0 {
				return nil, fmt.Errorf("%s: %w", images[i].Path, ErrMissingEmbeddings)
			}
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	bursts := GroupBursts(images, opts.GapMS)

	// Scoring only depends on per-image metrics, so it overlaps with
	// clustering.
	var scoringDone sync.WaitGroup
	scoringDone.Add(1)
	go func() {
		defer scoringDone.Done()
		opts.Scoring.ScoreImages(images)
	}()

	// Each burst owns its own union-find; bursts cluster independently.
	groupsPerBurst := make([][][]int, len(bursts))
	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i := range bursts {
		wg.Add(1)
		go func(b Burst) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			groupsPerBurst[b.ID] = ClusterBurst(images, b.Members, opts.HashThreshold)
		}(bursts[i])
	}
	wg.Wait()
	scoringDone.Wait()

	// Assign cluster ids in burst order so they are globally monotonic and
	// stable run to run.
	var clusters []Cluster
	nextID := 0
	for _, b := range bursts {
		for _, group := range groupsPerBurst[b.ID] {
			c := Cluster{
				ID:            nextID,
				BurstID:       b.ID,
				BurstIDs:      []int{b.ID},
				Members:       make([]string, len(group)),
				Scores:        make([]float64, len(group)),
				MemberIndexes: group,
			}
			for pos, idx := range group {
				c.Members[pos] = images[idx].Path
				c.Scores[pos] = images[idx].Score
			}
			c.Winner = c.Members[selectWinner(images, group)]
			clusters = append(clusters, c)
			nextID++
		}
	}

	if opts.Semantic {
		clusters = MergeClusters(images, clusters, opts.SemanticThreshold)
	}

	return &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Params: Params{
			BurstGapMS:        opts.GapMS,
			HashDistThresh:    opts.HashThreshold,
			WithEmbeddings:    opts.Semantic,
			SemanticThreshold: semanticThresholdParam(opts),
		},
		Images:   images,
		Bursts:   bursts,
		Clusters: clusters,
	}, nil
}

func semanticThresholdParam(opts Options) float64 {
	if !opts.Semantic {
		return 0
	}
	return opts.SemanticThreshold
}
