package cull

import "testing"

func TestUnionFindSingletons(t *testing.T) {
	uf := newUnionFind(4)

	for i := 0; i < 4; i++ {
		if root := uf.find(i); root != i {
			t.Errorf("find(%d) = %d before any union", i, root)
		}
	}
	if uf.connected(0, 1) {
		t.Error("elements connected before any union")
	}
}

func TestUnionFindTransitivity(t *testing.T) {
	uf := newUnionFind(5)

	uf.union(0, 1)
	uf.union(1, 2)

	if !uf.connected(0, 2) {
		t.Error("0 and 2 should be connected through 1")
	}
	if uf.connected(0, 3) {
		t.Error("0 and 3 should not be connected")
	}
}

func TestUnionFindIdempotentUnion(t *testing.T) {
	uf := newUnionFind(3)

	uf.union(0, 1)
	uf.union(0, 1)
	uf.union(1, 0)

	if !uf.connected(0, 1) {
		t.Error("0 and 1 should be connected")
	}
	if uf.size[uf.find(0)] != 2 {
		t.Errorf("component size = %d, want 2", uf.size[uf.find(0)])
	}
}

func TestUnionFindUnionBySize(t *testing.T) {
	uf := newUnionFind(6)

	// Build a component of three, then attach a singleton; the singleton
	// joins under the larger component's root.
	uf.union(0, 1)
	uf.union(1, 2)
	bigRoot := uf.find(0)

	uf.union(3, 0)

	if uf.find(3) != bigRoot {
		t.Errorf("singleton attached under root %d, want %d", uf.find(3), bigRoot)
	}
	if uf.size[bigRoot] != 4 {
		t.Errorf("component size = %d, want 4", uf.size[bigRoot])
	}
}

func TestUnionFindPathCompression(t *testing.T) {
	uf := newUnionFind(64)

	// Chain everything into one component.
	for i := 1; i < 64; i++ {
		uf.union(i-1, i)
	}
	root := uf.find(0)
	for i := 0; i < 64; i++ {
		if uf.find(i) != root {
			t.Fatalf("element %d has root %d, want %d", i, uf.find(i), root)
		}
	}
	// After compression every lookup points straight at the root.
	for i := 0; i < 64; i++ {
		if uf.parent[i] != root {
			t.Errorf("parent[%d] = %d not compressed to root %d", i, uf.parent[i], root)
		}
	}
}
