package cull

import (
	"fmt"
	"sync"
	"time"

	"github.com/kozaktomas/photo-cull/internal/fingerprint"
)

// Report is the full result of one culling run: every input image with its
// metrics and score, the burst partition and the clusters with their
// winners. It is produced once per run; the only mutation afterwards is the
// winner overwrite through Promote.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Params    Params    `json:"params"`
	Images    []Image   `json:"images"`
	Bursts    []Burst   `json:"bursts"`
	Clusters  []Cluster `json:"hash_clusters"`

	mu sync.Mutex
}

// Rehydrate restores the derived fields that are not serialized: burst ids,
// raw hash bits and the cluster member index arrays. Call it after
// unmarshaling a report from JSON.
func (r *Report) Rehydrate() error {
	for i := range r.Bursts {
		r.Bursts[i].ID = i
	}

	indexByPath := make(map[string]int, len(r.Images))
	for i := range r.Images {
		img := &r.Images[i]
		indexByPath[img.Path] = i
		if img.Hashable() {
			var err error
			if img.PHashBits, err = fingerprint.ParseHex(img.PHash); err != nil {
				return fmt.Errorf("image %s: %w", img.Path, err)
			}
			if img.DHashBits, err = fingerprint.ParseHex(img.DHash); err != nil {
				return fmt.Errorf("image %s: %w", img.Path, err)
			}
		}
	}

	for i := range r.Clusters {
		c := &r.Clusters[i]
		c.MemberIndexes = make([]int, len(c.Members))
		for j, path := range c.Members {
			idx, ok := indexByPath[path]
			if !ok {
				return fmt.Errorf("cluster %d references unknown image %s", c.ID, path)
			}
			c.MemberIndexes[j] = idx
		}
	}
	return nil
}

// Cluster returns the cluster with the given id, or nil.
func (r *Report) Cluster(clusterID int) *Cluster {
	return r.findCluster(clusterID)
}

// Winners returns the winning path of every cluster, in cluster id order.
func (r *Report) Winners() []string {
	winners := make([]string, len(r.Clusters))
	for i := range r.Clusters {
		winners[i] = r.Clusters[i].Winner
	}
	return winners
}
