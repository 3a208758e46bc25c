package geometry

import (
	"sort"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

const (
	// Leaf threshold: this many or fewer objects are stored in a leaf and scanned linearly
	leafThreshold = 2

	// A split is discarded when the two children together hold more than
	// this many times the parent's objects
	maxDuplicationRatio = 1.5

	// Nudge applied to the median extent so objects sitting exactly on it
	// land on a predictable side
	splitNudge = 1e-6
)

// bspNode is a node in the flattened tree. Leaves reference the range
// items[first:first+count]; internal nodes reference two child nodes.
type bspNode struct {
	leaf        bool
	axis        int
	split       float64
	left, right int32
	first       int32
	count       int32
}

// BSPTree is a binary space partition over object bounding boxes. Planes
// are axis aligned and cycle X→Y→Z with depth. Objects straddling a plane
// are referenced from both sides.
//
// The tree is immutable once built and safe for concurrent queries.
type BSPTree[T core.Shape] struct {
	objects []T
	nodes   []bspNode
	items   []int32 // Object indices referenced by leaves
	bounds  []core.AABB
}

// NewBSPTree builds the tree over objects, subdividing at most maxDepth times
func NewBSPTree[T core.Shape](objects []T, maxDepth int) *BSPTree[T] {
	tree := &BSPTree[T]{
		objects: make([]T, len(objects)),
		bounds:  make([]core.AABB, len(objects)),
	}
	copy(tree.objects, objects)

	candidates := make([]int32, len(objects))
	for i := range tree.objects {
		tree.bounds[i] = tree.objects[i].BoundingBox()
		candidates[i] = int32(i)
	}

	tree.build(candidates, 0, maxDepth)
	return tree
}

// build appends the subtree for candidates and returns its node index
func (tree *BSPTree[T]) build(candidates []int32, depth, depthRemaining int) int32 {
	if len(candidates) <= leafThreshold || depthRemaining <= 0 {
		return tree.appendLeaf(candidates)
	}

	axis := depth % 3
	split := tree.medianExtent(candidates, axis, depth%2 == 0)

	var left, right []int32
	for _, idx := range candidates {
		box := tree.bounds[idx]
		if box.Lower(axis) <= split {
			left = append(left, idx)
		}
		if box.Upper(axis) >= split {
			right = append(right, idx)
		}
	}

	// Too many straddlers: try the same set again along the next axis
	if float64(len(left)+len(right))/float64(len(candidates)) > maxDuplicationRatio {
		return tree.build(candidates, depth+1, depthRemaining-1)
	}

	nodeIdx := int32(len(tree.nodes))
	tree.nodes = append(tree.nodes, bspNode{axis: axis, split: split})

	leftIdx := tree.build(left, depth+1, depthRemaining-1)
	rightIdx := tree.build(right, depth+1, depthRemaining-1)

	tree.nodes[nodeIdx].left = leftIdx
	tree.nodes[nodeIdx].right = rightIdx
	return nodeIdx
}

// medianExtent returns the median lower (or upper) box extent of the candidates along axis
func (tree *BSPTree[T]) medianExtent(candidates []int32, axis int, useLower bool) float64 {
	extents := make([]float64, len(candidates))
	for i, idx := range candidates {
		if useLower {
			extents[i] = tree.bounds[idx].Lower(axis)
		} else {
			extents[i] = tree.bounds[idx].Upper(axis)
		}
	}
	sort.Float64s(extents)

	mid := extents[len(extents)/2]
	if useLower {
		return mid + splitNudge
	}
	return mid - splitNudge
}

func (tree *BSPTree[T]) appendLeaf(candidates []int32) int32 {
	nodeIdx := int32(len(tree.nodes))
	tree.nodes = append(tree.nodes, bspNode{
		leaf:  true,
		first: int32(len(tree.items)),
		count: int32(len(candidates)),
	})
	tree.items = append(tree.items, candidates...)
	return nodeIdx
}

// Hit returns the nearest object hit by the ray with t in [tMin, tMax]
func (tree *BSPTree[T]) Hit(ray core.Ray, tMin, tMax float64) (T, *core.HitRecord, bool) {
	if len(tree.nodes) == 0 {
		var zero T
		return zero, nil, false
	}
	return tree.hitNode(0, ray, tMin, tMax)
}

// hitNode searches the subtree, visiting the child on the ray origin's side
// of the plane first. The far child is only searched when the near one has
// no hit inside its part of the interval.
func (tree *BSPTree[T]) hitNode(nodeIdx int32, ray core.Ray, tMin, tMax float64) (T, *core.HitRecord, bool) {
	var zero T
	if tMin > tMax {
		return zero, nil, false
	}

	node := &tree.nodes[nodeIdx]
	if node.leaf {
		return tree.hitLeaf(node, ray, tMin, tMax)
	}

	origin := ray.Origin.Axis(node.axis)
	near, far := node.left, node.right
	if origin > node.split || (origin == node.split && ray.Direction.Axis(node.axis) > 0) {
		near, far = far, near
	}

	tPlane := ray.AxisPlaneIntersection(node.axis, node.split)
	switch {
	case tPlane > tMax || tPlane <= 0:
		// Plane is unreachable, behind the origin, or past the interval
		return tree.hitNode(near, ray, tMin, tMax)
	case tPlane < tMin:
		// Already crossed the plane before the interval starts
		return tree.hitNode(far, ray, tMin, tMax)
	}

	if obj, hit, ok := tree.hitNode(near, ray, tMin, tPlane); ok {
		return obj, hit, true
	}
	return tree.hitNode(far, ray, tPlane, tMax)
}

// hitLeaf scans the leaf linearly, narrowing the interval as closer hits appear
func (tree *BSPTree[T]) hitLeaf(node *bspNode, ray core.Ray, tMin, tMax float64) (T, *core.HitRecord, bool) {
	var closestObj T
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, idx := range tree.items[node.first : node.first+node.count] {
		if hit, isHit := tree.objects[idx].Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
			closestObj = tree.objects[idx]
		}
	}

	return closestObj, closestHit, closestHit != nil
}

// BoundingBox returns the union of all object bounds
func (tree *BSPTree[T]) BoundingBox() core.AABB {
	if len(tree.bounds) == 0 {
		return core.AABB{}
	}
	bbox := tree.bounds[0]
	for _, b := range tree.bounds[1:] {
		bbox = bbox.Union(b)
	}
	return bbox
}

// BSPStats contains statistics about the tree structure
type BSPStats struct {
	TotalNodes     int
	LeafNodes      int
	EmptyLeaves    int
	MaxDepth       int
	AvgLeafSize    float64
	ObjectCount    int
	ReferenceCount int // Object references across all leaves, counting duplicates
}

// Stats returns statistics about the tree structure
func (tree *BSPTree[T]) Stats() BSPStats {
	stats := BSPStats{ObjectCount: len(tree.objects)}
	if len(tree.nodes) == 0 {
		return stats
	}

	tree.collectStats(0, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgLeafSize = float64(stats.ReferenceCount) / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the tree
func (tree *BSPTree[T]) collectStats(nodeIdx int32, depth int, stats *BSPStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	node := &tree.nodes[nodeIdx]
	if node.leaf {
		stats.LeafNodes++
		stats.ReferenceCount += int(node.count)
		if node.count == 0 {
			stats.EmptyLeaves++
		}
		return
	}

	tree.collectStats(node.left, depth+1, stats)
	tree.collectStats(node.right, depth+1, stats)
}

// DuplicationFactor returns leaf references per object (1.0 means no duplication)
func (s BSPStats) DuplicationFactor() float64 {
	if s.ObjectCount == 0 {
		return 0
	}
	return float64(s.ReferenceCount) / float64(s.ObjectCount)
}
