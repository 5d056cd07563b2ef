package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"

	// Register decoders for DecodeConfig. Raw formats stay undecodable and
	// their images go through the pipeline without hashes.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kozaktomas/photo-cull/internal/cull"
	"github.com/kozaktomas/photo-cull/internal/fingerprint"
)

// Extractor prepares images for the culling pipeline. Timestamps are read
// sequentially (the exiftool process takes one request at a time); hashing
// and embedding fan out over a worker pool.
type Extractor struct {
	Exif           *TimestampReader // nil falls back to file mtime
	Metrics        MetricsIndex     // nil leaves images unscored
	Embeddings     *EmbeddingClient // required when WithEmbeddings is set
	WithEmbeddings bool
	Concurrency    int  // defaults to 4
	Quiet          bool // suppress the progress bar
}

// Run extracts all inputs for the given paths, in path order.
func (e *Extractor) Run(ctx context.Context, paths []string) ([]cull.Image, error) {
	if e.WithEmbeddings && e.Embeddings == nil {
		return nil, fmt.Errorf("embeddings requested but no embedding client configured")
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	images := make([]cull.Image, len(paths))
	for i, path := range paths {
		images[i] = cull.Image{
			Path:      path,
			Timestamp: e.Exif.Timestamp(path),
			Metrics:   e.Metrics.Lookup(path),
		}
	}

	var bar *progressbar.ProgressBar
	if !e.Quiet {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Extracting"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("photos"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	var mu sync.Mutex
	var firstErr error

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := range images {
		wg.Add(1)
		go func(img *cull.Image) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer func() {
				if bar != nil {
					bar.Add(1)
				}
			}()

			if err := e.extractOne(ctx, img); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(&images[i])
	}

	wg.Wait()
	if bar != nil {
		fmt.Println()
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return images, nil
}

func (e *Extractor) extractOne(ctx context.Context, img *cull.Image) error {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", img.Path, err)
	}

	// Dimensions and hashes need a decodable image. Raw formats fail here
	// and become singleton clusters downstream.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	if hashes, err := fingerprint.Compute(data); err == nil {
		img.PHash = hashes.PHash
		img.DHash = hashes.DHash
		img.PHashBits = hashes.PHashBits
		img.DHashBits = hashes.DHashBits
	}

	if e.WithEmbeddings {
		embedding, err := e.Embeddings.ComputeEmbedding(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to embed %s: %w", img.Path, err)
		}
		img.Embedding = embedding
	}
	return nil
}
