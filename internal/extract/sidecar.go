package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kozaktomas/photo-cull/internal/cull"
)

// MetricsIndex holds quality metrics loaded from a sidecar file, keyed by
// image path. Metrics come from an external analysis tool; images without an
// entry run through the pipeline unscored.
type MetricsIndex map[string]*cull.Metrics

// LoadMetrics reads a sidecar metrics file: a JSON object mapping image
// paths to their quality metrics.
func LoadMetrics(path string) (MetricsIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics file: %w", err)
	}

	var index MetricsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse metrics file %s: %w", path, err)
	}
	return index, nil
}

// Lookup finds the metrics for an image path. Sidecar files are often
// written with paths relative to a different root, so an exact match is
// tried first and the base name second.
func (m MetricsIndex) Lookup(path string) *cull.Metrics {
	if m == nil {
		return nil
	}
	if metrics, ok := m[path]; ok {
		return metrics
	}
	base := filepath.Base(path)
	if metrics, ok := m[base]; ok {
		return metrics
	}
	return nil
}
