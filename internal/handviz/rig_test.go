package handviz

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/handviz/internal/assets"
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/pkg/hand"
)

func TestBindWellFormed(t *testing.T) {
	for _, h := range hand.Hands() {
		t.Run(h.String(), func(t *testing.T) {
			g := scene.NewGraph()
			parent := g.Create("Hands", scene.NoNode)
			log, logs := observedLogger()
			before := g.Len()

			rig := bindHand(t, g, parent, h, log)

			assert.Equal(t, hand.JointCount, rig.Bound())
			assert.Empty(t, rig.MissingFingers())
			assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

			want := assets.HandPrefab(h).Count() + 1 +
				hand.JointCount*(assets.DebugMarkerPrefab().Count()+assets.VelocityPrefab().Count())
			assert.Equal(t, before+want, g.Len())

			assert.Equal(t, parent, g.Parent(rig.MeshRoot()))
			assert.Equal(t, parent, g.Parent(rig.DebugRoot()))
			assert.Equal(t, h.String()+"HandDebugDrawJoints", g.Name(rig.DebugRoot()))

			for _, j := range hand.Joints() {
				node, ok := rig.JointNode(j)
				require.True(t, ok, j.String())
				assert.True(t, strings.HasSuffix(g.Name(node), j.String()))

				d := rig.DebugNode(j)
				assert.Equal(t, j.String(), g.Name(d))
				assert.Equal(t, rig.DebugRoot(), g.Parent(d))
				assert.Equal(t, node, g.Parent(rig.VelocityNode(j)))

				line := rig.Line(j)
				require.NotNil(t, line)
				assert.Equal(t, float32(DefaultLineWidth), line.Width)
				p := g.WorldPose(node).Position
				assert.Equal(t, p, line.Points[0])
				assert.Equal(t, p, line.Points[1])
			}
		})
	}
}

func TestBindChainFollowsHierarchy(t *testing.T) {
	g := scene.NewGraph()
	rig := bindHand(t, g, scene.NoNode, hand.Left, nil)

	wrist, _ := rig.JointNode(hand.Wrist)
	for _, j := range hand.Joints() {
		if j == hand.Wrist {
			continue
		}
		node, _ := rig.JointNode(j)
		parent, _ := rig.JointNode(hand.ChainParent(j))
		assert.Equal(t, parent, g.Parent(node), j.String())
	}
	assert.Equal(t, "L_Armature", g.Name(g.Parent(wrist)))
}

func TestBindWristDirectChild(t *testing.T) {
	mesh := assets.HandPrefab(hand.Right)
	skipPrefab(t, mesh, "R_Armature")
	a := defaultAssets(hand.Right)
	a.Mesh = mesh

	g := scene.NewGraph()
	rig, err := BindRig(g, BindOptions{Handedness: hand.Right, Parent: scene.NoNode, Assets: a})
	require.NoError(t, err)
	wrist, ok := rig.JointNode(hand.Wrist)
	require.True(t, ok)
	assert.Equal(t, rig.MeshRoot(), g.Parent(wrist))
	assert.Equal(t, hand.JointCount, rig.Bound())
}

func TestBindMissingMidChainJoint(t *testing.T) {
	tests := []struct {
		name  string
		skip  string
		joint hand.JointID
	}{
		{"index intermediate", "L_IndexIntermediate", hand.IndexIntermediate},
		{"thumb tip", "L_ThumbTip", hand.ThumbTip},
		{"little proximal", "L_LittleProximal", hand.LittleProximal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := defaultAssets(hand.Left)
			skipPrefab(t, a.Mesh, tt.skip)

			g := scene.NewGraph()
			parent := g.Create("Hands", scene.NoNode)
			before := g.Len()

			rig, err := BindRig(g, BindOptions{Handedness: hand.Left, Parent: parent, Assets: a})
			require.Error(t, err)
			assert.Nil(t, rig)
			assert.True(t, errors.Is(err, ErrMalformedHierarchy))

			var missing *MissingJointError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.joint, missing.Joint)
			assert.Equal(t, hand.Left, missing.Hand)
			assert.Contains(t, err.Error(), tt.joint.String())

			assert.Equal(t, before, g.Len(), "partial nodes left behind")
			assert.Empty(t, g.Children(parent))
		})
	}
}

func TestBindMissingWrist(t *testing.T) {
	a := defaultAssets(hand.Right)
	findPrefab(a.Mesh, "R_Wrist").Name = "R_Forearm"

	g := scene.NewGraph()
	_, err := BindRig(g, BindOptions{Handedness: hand.Right, Parent: scene.NoNode, Assets: a})

	var missing *MissingJointError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, hand.Wrist, missing.Joint)
	assert.Zero(t, g.Len())
}

func TestBindMissingFrontJoint(t *testing.T) {
	a := defaultAssets(hand.Left)
	require.True(t, removePrefab(a.Mesh, "L_RingMetacarpal"))

	g := scene.NewGraph()
	log, logs := observedLogger()
	rig, err := BindRig(g, BindOptions{Handedness: hand.Left, Parent: scene.NoNode, Assets: a, Logger: log})
	require.NoError(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Ring", warnings[0].ContextMap()["finger"])

	assert.Equal(t, []hand.FingerID{hand.Ring}, rig.MissingFingers())
	assert.Equal(t, hand.JointCount-len(hand.Ring.Chain()), rig.Bound())

	for _, j := range hand.Joints() {
		_, ok := rig.JointNode(j)
		f, inFinger := j.Finger()
		assert.Equal(t, !(inFinger && f == hand.Ring), ok, j.String())

		// Every index still gets visualization nodes
		assert.True(t, g.Valid(rig.DebugNode(j)))
		assert.True(t, g.Valid(rig.VelocityNode(j)))
		assert.NotNil(t, rig.Line(j))
	}
	assert.Equal(t, rig.DebugRoot(), g.Parent(rig.VelocityNode(hand.RingProximal)))
}

func TestBindMissingSeveralFronts(t *testing.T) {
	a := defaultAssets(hand.Right)
	require.True(t, removePrefab(a.Mesh, "R_ThumbMetacarpal"))
	require.True(t, removePrefab(a.Mesh, "R_LittleMetacarpal"))

	log, logs := observedLogger()
	rig, err := BindRig(scene.NewGraph(), BindOptions{Handedness: hand.Right, Parent: scene.NoNode, Assets: a, Logger: log})
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, []hand.FingerID{hand.Thumb, hand.Little}, rig.MissingFingers())
}

func TestBindMissingPalm(t *testing.T) {
	a := defaultAssets(hand.Right)
	require.True(t, removePrefab(a.Mesh, "R_Palm"))

	log, logs := observedLogger()
	rig, err := BindRig(scene.NewGraph(), BindOptions{Handedness: hand.Right, Parent: scene.NoNode, Assets: a, Logger: log})
	require.NoError(t, err)
	_, ok := rig.JointNode(hand.Palm)
	assert.False(t, ok)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, hand.JointCount-1, rig.Bound())
}

func TestBindMissingAssets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *RigAssets)
	}{
		{"mesh", func(a *RigAssets) { a.Mesh = nil }},
		{"debug marker", func(a *RigAssets) { a.DebugMarker = nil }},
		{"velocity", func(a *RigAssets) { a.Velocity = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := defaultAssets(hand.Left)
			tt.mutate(&a)
			g := scene.NewGraph()
			_, err := BindRig(g, BindOptions{Handedness: hand.Left, Parent: scene.NoNode, Assets: a})
			assert.True(t, errors.Is(err, ErrMissingAsset))
			assert.Zero(t, g.Len())
		})
	}
}

func TestBindJointNames(t *testing.T) {
	names := hand.DefaultJointNames()
	names[hand.IndexTip.ToIndex()] = ""
	_, err := BindRig(scene.NewGraph(), BindOptions{
		Handedness: hand.Left,
		Parent:     scene.NoNode,
		Assets:     defaultAssets(hand.Left),
		JointNames: names,
	})
	assert.True(t, errors.Is(err, ErrInvalidJointNames))

	// Custom suffixes are matched against node names
	a := defaultAssets(hand.Left)
	renamed := hand.DefaultJointNames()
	for i, n := range renamed {
		renamed[i] = n + "_jnt"
	}
	var rename func(p *scene.Prefab)
	rename = func(p *scene.Prefab) {
		if _, ok := hand.ParseJoint(strings.TrimPrefix(p.Name, "L_")); ok {
			p.Name += "_jnt"
		}
		for _, c := range p.Children {
			rename(c)
		}
	}
	rename(a.Mesh)

	rig, err := BindRig(scene.NewGraph(), BindOptions{Handedness: hand.Left, Parent: scene.NoNode, Assets: a, JointNames: renamed})
	require.NoError(t, err)
	assert.Equal(t, hand.JointCount, rig.Bound())
	assert.Equal(t, "IndexTip_jnt", rig.g.Name(rig.DebugNode(hand.IndexTip)))
}

func TestBindAddsMissingDebugLine(t *testing.T) {
	a := defaultAssets(hand.Left)
	a.DebugMarker = &scene.Prefab{Name: "Dot", Components: []scene.ComponentSpec{{Type: "mesh", Shape: "cube", Size: 0.01}}}

	g := scene.NewGraph()
	rig, err := BindRig(g, BindOptions{Handedness: hand.Left, Parent: scene.NoNode, Assets: a, LineWidth: 0.01})
	require.NoError(t, err)
	for _, j := range hand.Joints() {
		line, ok := scene.GetComponent[*scene.LineRenderer](g, rig.DebugNode(j))
		require.True(t, ok)
		assert.Same(t, line, rig.Line(j))
		assert.Equal(t, float32(0.01), line.Width)
	}
}

func TestRigDestroy(t *testing.T) {
	g := scene.NewGraph()
	parent := g.Create("Hands", scene.NoNode)
	rig := bindHand(t, g, parent, hand.Right, nil)

	rig.Destroy()
	rig.Destroy()

	assert.Equal(t, 1, g.Len())
	assert.Empty(t, g.Children(parent))
	assert.Equal(t, scene.NoNode, rig.MeshRoot())
}
