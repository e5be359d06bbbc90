package geometry

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy. Children are
// either further nodes or the scene objects themselves.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	box   core.AABB // Union of the children's boxes
}

// bvhEntry pairs an object with its box so each box is computed once
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a hierarchy over objects for the shutter interval [time0, time1].
// The split axis at every level is drawn from random. The input slice is not modified.
func NewBVH(objects []Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("bvh object %d (%T): %w", i, object, ErrNoBoundingBox)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return buildBVH(entries, random), nil
}

// NewBVHFromList builds a hierarchy over the objects of a list
func NewBVHFromList(list *HittableList, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	return NewBVH(list.Objects, time0, time1, random)
}

// buildBVH recursively splits entries at the midpoint after sorting by box minimum
func buildBVH(entries []bvhEntry, random *rand.Rand) *BVHNode {
	axis := random.IntN(3)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Axis(axis) < b.box.Min.Axis(axis)
	}

	node := &BVHNode{}
	switch len(entries) {
	case 1:
		// Both children point at the single object
		node.Left, node.Right = entries[0].object, entries[0].object
		node.box = entries[0].box
		return node
	case 2:
		first, second := entries[0], entries[1]
		if less(second, first) {
			first, second = second, first
		}
		node.Left, node.Right = first.object, second.object
		node.box = first.box.Union(second.box)
		return node
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	mid := len(entries) / 2
	left := buildBVH(entries[:mid], random)
	right := buildBVH(entries[mid:], random)

	node.Left, node.Right = left, right
	node.box = left.box.Union(right.box)
	return node
}

// Hit tests the node box, then the left child, then the right child with the range narrowed to the left hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafSlots  int // child slots holding an object rather than a node
	MaxDepth   int
	AvgDepth   float64 // average depth of leaf slots
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	if stats.LeafSlots > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafSlots)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range [2]Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.LeafSlots++
			stats.AvgDepth += float64(depth + 1)
		}
	}
}
