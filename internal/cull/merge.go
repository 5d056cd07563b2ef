package cull

import (
	"sort"

	"github.com/coder/hnsw"

	"github.com/kozaktomas/photo-cull/internal/fingerprint"
)

// HNSW parameters for the cluster representative index.
const (
	// mergeMaxNeighbors (M) is the maximum number of neighbors per node.
	mergeMaxNeighbors = 16

	// mergeSearchK is how many nearest representatives are examined per
	// cluster when looking for merge candidates.
	mergeSearchK = 16
)

// MergeClusters merges clusters from different bursts whose representative
// embeddings (element-wise mean over members) exceed the cosine similarity
// threshold. Candidates come from an HNSW index over the representatives;
// merge decisions go through a union-find over cluster positions so
// transitive chains (A~B, B~C) collapse into a single cluster even when A
// and C are not direct neighbors.
//
// A merged cluster keeps the smallest participating cluster id, concatenates
// members by ascending original cluster id, unions the burst ids and
// recomputes the winner over the combined member set. Per-image scores are
// untouched. This runs once, after every burst has been clustered - it needs
// the complete cluster set.
func MergeClusters(images []Image, clusters []Cluster, threshold float64) []Cluster {
	if len(clusters) < 2 {
		return clusters
	}

	reps := make([][]float32, len(clusters))
	for i := range clusters {
		reps[i] = representative(images, clusters[i].MemberIndexes)
	}

	g := hnsw.NewGraph[int]()
	g.M = mergeMaxNeighbors
	g.Ml = 1.0 / float64(mergeMaxNeighbors) // Standard HNSW formula
	g.Distance = hnsw.CosineDistance

	for i, rep := range reps {
		if len(rep) == 0 {
			continue
		}
		g.Add(hnsw.MakeNode(i, rep))
	}

	uf := newUnionFind(len(clusters))
	for i, rep := range reps {
		if len(rep) == 0 {
			continue
		}
		for _, n := range g.Search(rep, mergeSearchK) {
			j := n.Key
			if j == i || clusters[i].BurstID == clusters[j].BurstID {
				continue
			}
			if fingerprint.CosineSimilarity(rep, reps[j]) > threshold {
				uf.union(i, j)
			}
		}
	}

	// Rebuild the cluster list, collapsing each component into one cluster.
	componentOf := make(map[int][]int, len(clusters))
	for i := range clusters {
		root := uf.find(i)
		componentOf[root] = append(componentOf[root], i)
	}

	merged := make([]Cluster, 0, len(componentOf))
	for _, component := range componentOf {
		sort.Slice(component, func(a, b int) bool {
			return clusters[component[a]].ID < clusters[component[b]].ID
		})
		merged = append(merged, mergeComponent(images, clusters, component))
	}
	sort.Slice(merged, func(a, b int) bool { return merged[a].ID < merged[b].ID })

	return merged
}

// mergeComponent combines the clusters at the given positions (already
// sorted by ascending cluster id) into a single cluster.
func mergeComponent(images []Image, clusters []Cluster, component []int) Cluster {
	base := clusters[component[0]]
	if len(component) == 1 {
		return base
	}

	out := Cluster{
		ID:      base.ID,
		BurstID: base.BurstID,
	}
	burstSet := make(map[int]bool)
	for _, pos := range component {
		c := clusters[pos]
		out.Members = append(out.Members, c.Members...)
		out.Scores = append(out.Scores, c.Scores...)
		out.MemberIndexes = append(out.MemberIndexes, c.MemberIndexes...)
		for _, b := range c.BurstIDs {
			burstSet[b] = true
		}
	}
	for b := range burstSet {
		out.BurstIDs = append(out.BurstIDs, b)
	}
	sort.Ints(out.BurstIDs)

	out.Winner = out.Members[selectWinner(images, out.MemberIndexes)]
	return out
}

// representative computes the element-wise mean of the member embeddings.
// Returns nil when members carry no embeddings.
func representative(images []Image, memberIndexes []int) []float32 {
	var mean []float32
	count := 0
	for _, idx := range memberIndexes {
		emb := images[idx].Embedding
		if len(emb) == 0 {
			continue
		}
		if mean == nil {
			mean = make([]float32, len(emb))
		}
		if len(emb) != len(mean) {
			continue // dimension mismatch, extractor bug
		}
		for d, v := range emb {
			mean[d] += v
		}
		count++
	}
	if count == 0 {
		return nil
	}
	for d := range mean {
		mean[d] /= float32(count)
	}
	return mean
}
