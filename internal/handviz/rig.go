package handviz

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/pkg/hand"
)

// DefaultLineWidth is the width of the debug connection lines.
const DefaultLineWidth = 0.005

// RigAssets are the prefabs a rig is built from.
type RigAssets struct {
	// Mesh is the authored hand: a skinned mesh plus a joint hierarchy
	// whose node names end with the joint names.
	Mesh *scene.Prefab
	// DebugMarker is instantiated once per joint. It should carry a line
	// renderer on its root; one is added if it does not.
	DebugMarker *scene.Prefab
	// Velocity is instantiated once per joint and attached to the joint.
	Velocity *scene.Prefab
}

// BindOptions configure BindRig.
type BindOptions struct {
	Handedness hand.Handedness
	// Parent is the node the hand lives under. Joint poses from the
	// tracking source are expressed in its space.
	Parent scene.NodeID
	Assets RigAssets
	// JointNames is matched against node name suffixes. The zero value
	// means hand.DefaultJointNames().
	JointNames [hand.JointCount]string
	LineWidth  float32
	Logger     *zap.Logger
}

// Rig is one hand bound to the scene: the instantiated mesh, the authored
// joint nodes found in it, and the debug and velocity nodes created for it.
//
// Joint nodes are borrowed from the mesh hierarchy. Debug and velocity nodes
// exist for every joint, bound or not.
type Rig struct {
	g          *scene.Graph
	handedness hand.Handedness
	log        *zap.Logger

	meshRoot  scene.NodeID
	debugRoot scene.NodeID

	joints   [hand.JointCount]scene.NodeID
	debug    [hand.JointCount]scene.NodeID
	velocity [hand.JointCount]scene.NodeID
	lines    [hand.JointCount]*scene.LineRenderer

	drawMesh        bool
	debugDrawJoints bool
	velocityType    VelocityType

	missing []hand.FingerID
}

func nameMatcher(suffix string) func(string) bool {
	return func(name string) bool { return strings.HasSuffix(name, suffix) }
}

// BindRig instantiates the hand mesh under opts.Parent and binds its joint
// nodes by name. A finger whose first joint is missing is left unbound with
// a warning. Any other missing joint fails the bind, in which case every node
// created so far is destroyed again.
func BindRig(g *scene.Graph, opts BindOptions) (*Rig, error) {
	if opts.Assets.Mesh == nil {
		return nil, fmt.Errorf("%s hand mesh: %w", opts.Handedness, ErrMissingAsset)
	}
	if opts.Assets.DebugMarker == nil {
		return nil, fmt.Errorf("debug marker: %w", ErrMissingAsset)
	}
	if opts.Assets.Velocity == nil {
		return nil, fmt.Errorf("velocity indicator: %w", ErrMissingAsset)
	}
	names := opts.JointNames
	if names == ([hand.JointCount]string{}) {
		names = hand.DefaultJointNames()
	}
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("%w: no name for %s", ErrInvalidJointNames, hand.FromIndex(i))
		}
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultLineWidth
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &Rig{
		g:          g,
		handedness: opts.Handedness,
		log:        log.With(zap.Stringer("hand", opts.Handedness)),
		debugRoot:  scene.NoNode,
	}
	for i := range r.joints {
		r.joints[i] = scene.NoNode
		r.debug[i] = scene.NoNode
		r.velocity[i] = scene.NoNode
	}

	r.meshRoot = g.Instantiate(opts.Assets.Mesh, opts.Parent)
	g.SetLocalPose(r.meshRoot, poseIdentity)

	if err := r.bindJoints(names); err != nil {
		r.Destroy()
		return nil, err
	}

	r.debugRoot = g.Create(opts.Handedness.String()+"HandDebugDrawJoints", opts.Parent)
	for i := range r.joints {
		r.attachDebug(i, names[i], opts.Assets, opts.LineWidth)
	}

	for _, f := range r.missing {
		r.log.Warn("hand hierarchy not set correctly",
			zap.Stringer("finger", f),
			zap.String("joint", names[f.FrontJoint().ToIndex()]))
	}
	return r, nil
}

func (r *Rig) bindJoints(names [hand.JointCount]string) error {
	g := r.g
	wristName := names[hand.Wrist.ToIndex()]
	isWrist := nameMatcher(wristName)

	// The wrist is a child or grandchild of the mesh root.
	wrist, ok := scene.NoNode, false
	for _, child := range g.Children(r.meshRoot) {
		if isWrist(g.Name(child)) {
			wrist, ok = child, true
			break
		}
		if wrist, ok = g.FindChild(child, isWrist); ok {
			break
		}
	}
	if !ok {
		return &MissingJointError{Hand: r.handedness, Joint: hand.Wrist, Name: wristName}
	}
	r.joints[hand.Wrist.ToIndex()] = wrist

	if palm, ok := g.FindChild(wrist, nameMatcher(names[hand.Palm.ToIndex()])); ok {
		r.joints[hand.Palm.ToIndex()] = palm
	} else {
		r.log.Debug("palm joint not found")
	}

	for _, f := range hand.Fingers() {
		front := f.FrontJoint()
		current, ok := g.FindChild(wrist, nameMatcher(names[front.ToIndex()]))
		if !ok {
			r.missing = append(r.missing, f)
			continue
		}
		r.joints[front.ToIndex()] = current

		for j := front + 1; j <= f.BackJoint(); j++ {
			next, ok := g.FindChild(current, nameMatcher(names[j.ToIndex()]))
			if !ok {
				return &MissingJointError{Hand: r.handedness, Joint: j, Name: names[j.ToIndex()]}
			}
			r.joints[j.ToIndex()] = next
			current = next
		}
	}
	return nil
}

func (r *Rig) attachDebug(i int, name string, assets RigAssets, width float32) {
	g := r.g
	joint := r.joints[i]

	d := g.Instantiate(assets.DebugMarker, r.debugRoot)
	g.SetName(d, name)
	line, ok := scene.GetComponent[*scene.LineRenderer](g, d)
	if !ok {
		line = scene.NewLineRenderer(width, scene.Color{1, 1, 1})
		g.AddComponent(d, line)
	}
	line.Width = width
	r.debug[i] = d
	r.lines[i] = line

	velocityParent := joint
	if !g.Valid(joint) {
		velocityParent = r.debugRoot
	}
	v := g.Instantiate(assets.Velocity, velocityParent)
	g.SetLocalPose(v, poseIdentity)
	r.velocity[i] = v

	anchor := r.debugRoot
	if g.Valid(joint) {
		anchor = joint
		g.SetLocalPose(d, g.WorldPose(joint).RelativeTo(g.WorldPose(r.debugRoot)))
	}
	p := g.WorldPose(anchor).Position
	line.SetPositions(p, p)
	if vl, ok := scene.GetComponent[*scene.LineRenderer](g, v); ok {
		vl.SetPositions(p, p)
	}
}

// Destroy removes the nodes the rig created: the mesh instance and the
// debug root. It is safe to call more than once.
func (r *Rig) Destroy() {
	r.g.Destroy(r.meshRoot)
	r.g.Destroy(r.debugRoot)
	r.meshRoot = scene.NoNode
	r.debugRoot = scene.NoNode
}

// Handedness returns which hand this rig is.
func (r *Rig) Handedness() hand.Handedness { return r.handedness }

// MeshRoot returns the instantiated mesh node.
func (r *Rig) MeshRoot() scene.NodeID { return r.meshRoot }

// DebugRoot returns the parent of all debug joint nodes.
func (r *Rig) DebugRoot() scene.NodeID { return r.debugRoot }

// JointNode returns the authored node bound to j.
func (r *Rig) JointNode(j hand.JointID) (scene.NodeID, bool) {
	if !j.Valid() {
		return scene.NoNode, false
	}
	id := r.joints[j.ToIndex()]
	return id, id != scene.NoNode
}

// DebugNode returns the debug marker node for j.
func (r *Rig) DebugNode(j hand.JointID) scene.NodeID {
	if !j.Valid() {
		return scene.NoNode
	}
	return r.debug[j.ToIndex()]
}

// VelocityNode returns the velocity indicator node for j.
func (r *Rig) VelocityNode(j hand.JointID) scene.NodeID {
	if !j.Valid() {
		return scene.NoNode
	}
	return r.velocity[j.ToIndex()]
}

// Line returns the debug line connecting j to its chain parent.
func (r *Rig) Line(j hand.JointID) *scene.LineRenderer {
	if !j.Valid() {
		return nil
	}
	return r.lines[j.ToIndex()]
}

// Bound returns how many joints have an authored node.
func (r *Rig) Bound() int {
	n := 0
	for _, id := range r.joints {
		if id != scene.NoNode {
			n++
		}
	}
	return n
}

// MissingFingers lists the fingers whose first joint was not found.
func (r *Rig) MissingFingers() []hand.FingerID {
	return r.missing
}

// Settings returns the flags currently applied to the rig.
func (r *Rig) Settings() Settings {
	return Settings{
		DrawMeshes:      r.drawMesh,
		DebugDrawJoints: r.debugDrawJoints,
		VelocityType:    r.velocityType,
	}
}
