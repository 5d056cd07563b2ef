package cull

import "fmt"

// selectWinner returns the position (within the parallel member arrays) of
// the highest scoring member. Exactly equal scores resolve to the member
// with the smallest original image index, which makes selection
// deterministic regardless of clustering order.
func selectWinner(images []Image, memberIndexes []int) int {
	best := 0
	for pos := 1; pos < len(memberIndexes); pos++ {
		cand, cur := memberIndexes[pos], memberIndexes[best]
		if images[cand].Score > images[cur].Score ||
			(images[cand].Score == images[cur].Score && cand < cur) {
			best = pos
		}
	}
	return best
}

// Promote overrides the winner of a cluster with the given member image.
// Promoting the current winner is a no-op. The path must be a current member
// of the cluster; otherwise ErrNotAMember is returned and the report is left
// untouched. Promote never re-scores - it records a manual decision.
// Concurrent promotes are serialized; the last write wins.
func (r *Report) Promote(clusterID int, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cluster := r.findCluster(clusterID)
	if cluster == nil {
		return fmt.Errorf("promote %d: %w", clusterID, ErrClusterNotFound)
	}
	if !cluster.Contains(path) {
		return fmt.Errorf("promote %q in cluster %d: %w", path, clusterID, ErrNotAMember)
	}

	cluster.Winner = path
	return nil
}

// findCluster returns the cluster with the given id, or nil. Callers hold
// r.mu when mutating.
func (r *Report) findCluster(clusterID int) *Cluster {
	for i := range r.Clusters {
		if r.Clusters[i].ID == clusterID {
			return &r.Clusters[i]
		}
	}
	return nil
}
