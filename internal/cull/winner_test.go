package cull

import (
	"errors"
	"testing"
)

func scoredImages(scores ...float64) []Image {
	images := make([]Image, len(scores))
	for i, s := range scores {
		images[i] = Image{Path: pathFor(i), Score: s}
	}
	return images
}

func TestSelectWinnerHighestScore(t *testing.T) {
	images := scoredImages(0.3, 0.9, 0.5)

	if got := selectWinner(images, []int{0, 1, 2}); got != 1 {
		t.Errorf("winner position = %d, want 1", got)
	}
}

func TestSelectWinnerTieBreaksToLowestIndex(t *testing.T) {
	images := scoredImages(0.5, 0.7, 0.7, 0.7)

	// Member order should not matter, only the original image index.
	if got := selectWinner(images, []int{3, 2, 1, 0}); got != 3 {
		t.Errorf("winner position = %d, want 3 (image index 1)", got)
	}
}

func TestSelectWinnerSubsetOfImages(t *testing.T) {
	images := scoredImages(0.9, 0.1, 0.8)

	// Image 0 is not a member; the winner comes from the member list.
	if got := selectWinner(images, []int{1, 2}); got != 1 {
		t.Errorf("winner position = %d, want 1 (image index 2)", got)
	}
}

func TestSelectWinnerAllFlagged(t *testing.T) {
	images := scoredImages(MinScore, MinScore, MinScore)

	if got := selectWinner(images, []int{2, 0, 1}); got != 1 {
		t.Errorf("winner position = %d, want 1 (lowest image index)", got)
	}
}

func promotableReport() *Report {
	images := scoredImages(0.9, 0.5, 0.7)
	return &Report{
		Images: images,
		Clusters: []Cluster{
			{
				ID:            0,
				Members:       []string{pathFor(0), pathFor(1), pathFor(2)},
				Scores:        []float64{0.9, 0.5, 0.7},
				Winner:        pathFor(0),
				MemberIndexes: []int{0, 1, 2},
			},
			{
				ID:            1,
				Members:       []string{pathFor(3)},
				Scores:        []float64{0.4},
				Winner:        pathFor(3),
				MemberIndexes: []int{3},
			},
		},
	}
}

func TestPromoteOverridesWinner(t *testing.T) {
	r := promotableReport()

	if err := r.Promote(0, pathFor(1)); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if r.Clusters[0].Winner != pathFor(1) {
		t.Errorf("winner = %q, want %q", r.Clusters[0].Winner, pathFor(1))
	}
}

func TestPromoteIdempotent(t *testing.T) {
	r := promotableReport()

	for i := 0; i < 3; i++ {
		if err := r.Promote(0, pathFor(2)); err != nil {
			t.Fatalf("promote attempt %d failed: %v", i, err)
		}
	}
	if r.Clusters[0].Winner != pathFor(2) {
		t.Errorf("winner = %q, want %q", r.Clusters[0].Winner, pathFor(2))
	}
}

func TestPromoteCurrentWinnerNoOp(t *testing.T) {
	r := promotableReport()

	if err := r.Promote(0, pathFor(0)); err != nil {
		t.Fatalf("promoting the current winner failed: %v", err)
	}
	if r.Clusters[0].Winner != pathFor(0) {
		t.Errorf("winner = %q, want %q", r.Clusters[0].Winner, pathFor(0))
	}
}

func TestPromoteUnknownCluster(t *testing.T) {
	r := promotableReport()

	err := r.Promote(99, pathFor(0))
	if !errors.Is(err, ErrClusterNotFound) {
		t.Errorf("err = %v, want ErrClusterNotFound", err)
	}
}

func TestPromoteNotAMember(t *testing.T) {
	r := promotableReport()

	err := r.Promote(0, pathFor(3))
	if !errors.Is(err, ErrNotAMember) {
		t.Errorf("err = %v, want ErrNotAMember", err)
	}
	if r.Clusters[0].Winner != pathFor(0) {
		t.Error("failed promotion must not change the winner")
	}
}
