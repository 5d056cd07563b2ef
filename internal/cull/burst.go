package cull

import "sort"

// GroupBursts partitions the images into bursts of temporally adjacent
// shots. Images are ordered by capture time (stable, so equal timestamps
// keep their discovery order) and a new burst starts whenever the gap to the
// previous image is strictly greater than gapMS milliseconds. A gap exactly
// equal to gapMS stays in the same burst. Every image ends up in exactly one
// burst; empty input yields no bursts.
func GroupBursts(images []Image, gapMS int) []Burst {
	if len(images) == 0 {
		return nil
	}

	order := make([]int, len(images))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return images[order[i]].Timestamp.Before(images[order[j]].Timestamp)
	})

	var bursts []Burst
	current := Burst{ID: 0, Members: []int{order[0]}}
	last := images[order[0]].Timestamp

	for _, idx := range order[1:] {
		ts := images[idx].Timestamp
		if ts.Sub(last).Milliseconds() > int64(gapMS) {
			bursts = append(bursts, current)
			current = Burst{ID: len(bursts), Members: []int{idx}}
		} else {
			current.Members = append(current.Members, idx)
		}
		last = ts
	}

	return append(bursts, current)
}
