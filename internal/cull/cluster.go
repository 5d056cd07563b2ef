package cull

import "github.com/kozaktomas/photo-cull/internal/fingerprint"

// ClusterBurst partitions one burst's members into near-duplicate clusters.
// An edge connects two images when either their pHash or their dHash Hamming
// distance is within threshold; connected components of that graph are the
// clusters. Biasing toward the OR of the two hashes deliberately over-merges
// rather than splitting true duplicates, since the scorer picks a single
// winner per cluster anyway.
//
// The returned groups hold image indices in discovery order (the burst's
// capture-time order). Images without usable hashes become singleton
// clusters after all hashed groups, matching their discovery by the
// clusterer. Pairwise comparison is O(n²) over the burst, which stays cheap
// at burst sizes; component tracking is near-linear via union-find.
func ClusterBurst(images []Image, members []int, threshold int) [][]int {
	if len(members) == 0 {
		return nil
	}

	hashed := make([]int, 0, len(members))
	unhashed := make([]int, 0)
	for _, idx := range members {
		if images[idx].Hashable() {
			hashed = append(hashed, idx)
		} else {
			unhashed = append(unhashed, idx)
		}
	}

	uf := newUnionFind(len(hashed))
	for i := 0; i < len(hashed); i++ {
		a := &images[hashed[i]]
		for j := i + 1; j < len(hashed); j++ {
			b := &images[hashed[j]]
			if fingerprint.Similar(a.PHashBits, b.PHashBits, threshold) ||
				fingerprint.Similar(a.DHashBits, b.DHashBits, threshold) {
				uf.union(i, j)
			}
		}
	}

	// Group by component root, preserving first-seen order.
	var groups [][]int
	groupOf := make(map[int]int, len(hashed))
	for i, idx := range hashed {
		root := uf.find(i)
		g, ok := groupOf[root]
		if !ok {
			g = len(groups)
			groupOf[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], idx)
	}

	for _, idx := range unhashed {
		groups = append(groups, []int{idx})
	}

	return groups
}
