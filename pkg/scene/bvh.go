package scene

import (
	"sort"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// bvhRef points either at an internal node (>= 0) or at a leaf element,
// encoded as -(id + 1)
type bvhRef int

func nodeRef(index int) bvhRef      { return bvhRef(index) }
func leafRef(id ElementID) bvhRef   { return bvhRef(-int(id) - 1) }
func (r bvhRef) isLeaf() bool       { return r < 0 }
func (r bvhRef) element() ElementID { return ElementID(-int(r) - 1) }

// bvhNode is an internal node; its box bounds both children
type bvhNode struct {
	box         core.AABB
	axis        int
	left, right bvhRef
}

// BVHStats summarizes the shape of a built hierarchy
type BVHStats struct {
	Nodes     int // Internal nodes
	Leaves    int // Bounded elements stored in the tree
	MaxDepth  int
	Unbounded int // Elements tested against every ray
}

// BVH is a bounding volume hierarchy over scene elements. It is built once
// and never modified.
type BVH struct {
	nodes     []bvhNode
	root      bvhRef
	rootBox   core.AABB
	hasRoot   bool
	unbounded []ElementID
	stats     BVHStats
}

type boxedElement struct {
	id  ElementID
	box core.AABB
}

// NewBVH builds a hierarchy over items using their bounds over timeRange.
// It panics when items is empty.
func (s *Scene) NewBVH(items []ElementID, timeRange TimeRange) *BVH {
	return newBVH(items, func(id ElementID) (core.AABB, bool) {
		return s.BoundingBox(id, timeRange)
	})
}

func newBVH(items []ElementID, boxOf func(ElementID) (core.AABB, bool)) *BVH {
	if len(items) == 0 {
		panic("scene: cannot build a BVH over zero elements")
	}

	// Boxes with NaN extents from degenerate geometry are tested directly
	bvh := &BVH{}
	var bounded []boxedElement
	for _, id := range items {
		if box, ok := boxOf(id); ok && box.IsValid() {
			bounded = append(bounded, boxedElement{id: id, box: box})
		} else {
			bvh.unbounded = append(bvh.unbounded, id)
		}
	}

	if len(bounded) > 0 {
		var depth int
		bvh.root, bvh.rootBox, depth = bvh.build(bounded, 0, 0)
		bvh.hasRoot = true
		bvh.stats.MaxDepth = depth
	}
	bvh.stats.Nodes = len(bvh.nodes)
	bvh.stats.Leaves = len(bounded)
	bvh.stats.Unbounded = len(bvh.unbounded)

	return bvh
}

// build returns the subtree reference, its bounds and its depth. The split
// axis advances by the number of items on each side rather than by one, so
// neighboring subtrees do not all split along the same axis.
func (bvh *BVH) build(items []boxedElement, axis, depth int) (bvhRef, core.AABB, int) {
	if len(items) == 1 {
		return leafRef(items[0].id), items[0].box, depth
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].box.Min.Axis(axis) < items[j].box.Min.Axis(axis)
	})

	index := len(bvh.nodes)
	bvh.nodes = append(bvh.nodes, bvhNode{axis: axis})

	if len(items) == 2 {
		box := items[0].box.Union(items[1].box)
		bvh.nodes[index] = bvhNode{box: box, axis: axis, left: leafRef(items[0].id), right: leafRef(items[1].id)}
		return nodeRef(index), box, depth + 1
	}

	mid := len(items) / 2
	leftItems, rightItems := items[:mid], items[mid:]
	left, leftBox, leftDepth := bvh.build(leftItems, (axis+len(leftItems))%3, depth+1)
	right, rightBox, rightDepth := bvh.build(rightItems, (axis+len(rightItems))%3, depth+1)

	box := leftBox.Union(rightBox)
	bvh.nodes[index] = bvhNode{box: box, axis: axis, left: left, right: right}
	return nodeRef(index), box, max(leftDepth, rightDepth)
}

// Hit returns the nearest hit among all elements in the hierarchy
func (bvh *BVH) Hit(s *Scene, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	closest, _ := s.hitList(bvh.unbounded, ray, tMin, tMax, sampler)
	closestSoFar := tMax
	if closest != nil {
		closestSoFar = closest.T
	}

	if bvh.hasRoot {
		if hit, ok := bvh.hitRef(s, bvh.root, ray, tMin, closestSoFar, sampler); ok {
			closest = hit
		}
	}

	return closest, closest != nil
}

func (bvh *BVH) hitRef(s *Scene, ref bvhRef, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	if ref.isLeaf() {
		return s.Hit(ref.element(), ray, tMin, tMax, sampler)
	}

	node := &bvh.nodes[ref]
	if !node.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	// Visit the side the ray points at first so its hit shrinks the range
	// for the other side. Both sides are always checked since boxes overlap.
	first, second := node.left, node.right
	if ray.Direction.Axis(node.axis) <= 0 {
		first, second = second, first
	}

	closest, ok := bvh.hitRef(s, first, ray, tMin, tMax, sampler)
	if ok {
		tMax = closest.T
	}
	if hit, ok := bvh.hitRef(s, second, ray, tMin, tMax, sampler); ok {
		closest = hit
	}

	return closest, closest != nil
}

// BoundingBox is only defined when every element is bounded
func (bvh *BVH) BoundingBox() (core.AABB, bool) {
	if len(bvh.unbounded) > 0 || !bvh.hasRoot {
		return core.AABB{}, false
	}
	return bvh.rootBox, true
}

// Stats returns the hierarchy's shape
func (bvh *BVH) Stats() BVHStats {
	return bvh.stats
}
