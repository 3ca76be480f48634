package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/lights"
	"github.com/df07/go-mis-pathtracer/pkg/log"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/transform"
)

var (
	// ErrEmptyScene is returned when the graph below the root holds no leaves
	ErrEmptyScene = errors.New("scene: graph has no geometry")

	// ErrCyclicGraph is returned when a node is reachable from itself
	ErrCyclicGraph = errors.New("scene: graph contains a cycle")
)

// NodeID addresses a node inside a Builder
type NodeID int

// leaf is one geometry attached to a node. A positive density turns the
// geometry into the boundary of a participating medium.
type leaf struct {
	geometry       geometry.Geometry
	material       material.Material
	lightCandidate bool
	density        float64
}

type node struct {
	leaves    []leaf
	transform transform.Transformation
	velocity  core.Dir3
	children  []NodeID
}

// Builder assembles a scene graph. Nodes may be shared by several parents
// to reuse a sub-assembly; Finish flattens the graph into a Scene.
type Builder struct {
	nodes  []node
	logger log.Logger
}

// NewBuilder creates an empty scene graph builder
func NewBuilder() *Builder {
	return &Builder{logger: log.New("scene")}
}

func (b *Builder) newNode(leaves ...leaf) NodeID {
	b.nodes = append(b.nodes, node{leaves: leaves, transform: transform.Identity()})
	return NodeID(len(b.nodes) - 1)
}

// NewGroup creates a node without geometry
func (b *Builder) NewGroup() NodeID {
	return b.newNode()
}

// NewObject creates a node holding one surface
func (b *Builder) NewObject(g geometry.Geometry, m material.Material) NodeID {
	return b.newNode(leaf{geometry: g, material: m})
}

// NewVolume creates a node holding a constant-density medium bounded by g
func (b *Builder) NewVolume(boundary geometry.Geometry, phase material.Material, density float64) NodeID {
	return b.newNode(leaf{geometry: boundary, material: phase, density: density})
}

// NewMesh creates a node holding every triangle with a shared material
func (b *Builder) NewMesh(triangles []*geometry.Triangle, m material.Material) NodeID {
	leaves := make([]leaf, len(triangles))
	for i, tri := range triangles {
		leaves[i] = leaf{geometry: tri, material: m}
	}
	return b.newNode(leaves...)
}

// Add attaches children to parent and returns parent
func (b *Builder) Add(parent NodeID, children ...NodeID) NodeID {
	b.nodes[parent].children = append(b.nodes[parent].children, children...)
	return parent
}

// SetTransform replaces the node's local transform
func (b *Builder) SetTransform(id NodeID, t transform.Transformation) NodeID {
	b.nodes[id].transform = t
	return id
}

// Translate appends a translation to the node's local transform
func (b *Builder) Translate(id NodeID, offset core.Dir3) NodeID {
	b.nodes[id].transform = b.nodes[id].transform.Translate(offset)
	return id
}

// RotateY appends a rotation about the up axis to the node's local transform
func (b *Builder) RotateY(id NodeID, degrees float64) NodeID {
	b.nodes[id].transform = b.nodes[id].transform.RotateY(degrees)
	return id
}

// Animate adds a constant velocity, in the node's parent space, per unit of ray time
func (b *Builder) Animate(id NodeID, velocity core.Dir3) NodeID {
	b.nodes[id].velocity = b.nodes[id].velocity.Add(velocity)
	return id
}

// MarkLightCandidates flags every leaf of the node as a possible light to sample
func (b *Builder) MarkLightCandidates(id NodeID) NodeID {
	for i := range b.nodes[id].leaves {
		b.nodes[id].leaves[i].lightCandidate = true
	}
	return id
}

// finishState carries the flattening pass's output
type finishState struct {
	scene    *Scene
	leaves   []ElementID
	light    lights.Light
	onStack  []bool
	baked    int
	wrapped  int
	volumes  int
	animated int
}

// Finish flattens the graph under root in one depth-first pass. Transforms
// are accumulated down the tree and baked into geometry where a closed form
// exists; the rest keep a residual transform wrapper. Every leaf ends up in a
// single BVH, whose element id is returned. The first light candidate that is
// an untransformed, unanimated Rect becomes the light to sample; the
// returned light is nil when there is none.
func (b *Builder) Finish(root NodeID, timeRange TimeRange) (*Scene, ElementID, lights.Light, error) {
	state := &finishState{
		scene:   NewScene(),
		onStack: make([]bool, len(b.nodes)),
	}

	if err := b.finishNode(state, root, transform.Identity(), core.Vec3{}); err != nil {
		return nil, 0, nil, err
	}
	if len(state.leaves) == 0 {
		return nil, 0, nil, ErrEmptyScene
	}

	bvh := state.scene.NewBVH(state.leaves, timeRange)
	rootID := state.scene.Add(BVHElement{BVH: bvh})

	stats := bvh.Stats()
	b.logger.Debugf("BVH: %d nodes, %d leaves, depth %d, %d unbounded",
		stats.Nodes, stats.Leaves, stats.MaxDepth, stats.Unbounded)
	b.logger.Infof("Flattened %d leaves (%d baked, %d wrapped, %d volumes, %d animated), light provider: %t",
		len(state.leaves), state.baked, state.wrapped, state.volumes, state.animated, state.light != nil)

	return state.scene, rootID, state.light, nil
}

func (b *Builder) finishNode(state *finishState, id NodeID, parent transform.Transformation, parentVelocity core.Dir3) error {
	if state.onStack[id] {
		return fmt.Errorf("node %d: %w", id, ErrCyclicGraph)
	}
	state.onStack[id] = true
	defer func() { state.onStack[id] = false }()

	n := &b.nodes[id]
	full := n.transform.Then(parent)
	velocity := parentVelocity.Add(parent.ApplyDirection(n.velocity))
	animated := velocity != (core.Vec3{})

	for _, l := range n.leaves {
		g, residual := bake(l.geometry, full)
		hasResidual := !residual.IsIdentity()

		var element Element = SurfaceElement{Geometry: g, Material: l.material}
		if l.density > 0 {
			element = VolumeElement{Boundary: g, Phase: l.material, Density: l.density}
			state.volumes++
		}
		elementID := state.scene.Add(element)

		if hasResidual {
			elementID = state.scene.Add(TransformElement{Child: elementID, Transform: residual})
			state.wrapped++
		} else {
			state.baked++
		}
		if animated {
			elementID = state.scene.Add(AnimationElement{Child: elementID, Velocity: velocity})
			state.animated++
		}
		state.leaves = append(state.leaves, elementID)

		if l.lightCandidate && state.light == nil && !hasResidual && !animated && l.density == 0 {
			if rect, ok := g.(*geometry.Rect); ok {
				state.light = lights.NewRectLight(rect)
			}
		}
	}

	for _, child := range n.children {
		if err := b.finishNode(state, child, full, velocity); err != nil {
			return err
		}
	}

	return nil
}

// bake applies t to g where the geometry has a closed form for it and
// returns the transform still left to apply
func bake(g geometry.Geometry, t transform.Transformation) (geometry.Geometry, transform.Transformation) {
	switch g := g.(type) {
	case *geometry.Sphere:
		return geometry.NewSphere(t.ApplyPoint(g.Center), t.ApplyDistance(g.Radius)), transform.Identity()

	case *geometry.Triangle:
		baked := *g
		for i := range baked.Positions {
			baked.Positions[i] = t.ApplyPoint(g.Positions[i])
			baked.Normals[i] = t.ApplyNormal(g.Normals[i])
		}
		return &baked, transform.Identity()

	case *geometry.Box:
		// Only a pure translation keeps the box axis-aligned
		if t.IsTranslation() {
			offset, _ := t.SplitTranslation()
			return &geometry.Box{Bounds: g.Bounds.Translate(offset)}, transform.Identity()
		}
	}

	return g, t
}
