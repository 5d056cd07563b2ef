package cull

// unionFind is an arena-backed disjoint-set over integer indices with path
// compression and union by size. Two instances are used per run: one per
// burst over image positions, and one global over cluster ids during the
// semantic merge.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

// find returns the representative of x, compressing the path along the way.
func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		u.parent[x], x = root, u.parent[x]
	}
	return root
}

// union merges the sets containing a and b, attaching the smaller tree under
// the larger.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}

// connected reports whether a and b are in the same set.
func (u *unionFind) connected(a, b int) bool {
	return u.find(a) == u.find(b)
}
