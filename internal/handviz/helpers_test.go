package handviz

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/handviz/internal/assets"
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/pkg/hand"
	"github.com/Faultbox/handviz/pkg/math"
)

const eps = 1e-4

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func defaultAssets(h hand.Handedness) RigAssets {
	return RigAssets{
		Mesh:        assets.HandPrefab(h),
		DebugMarker: assets.DebugMarkerPrefab(),
		Velocity:    assets.VelocityPrefab(),
	}
}

func findPrefab(p *scene.Prefab, name string) *scene.Prefab {
	if p.Name == name {
		return p
	}
	for _, c := range p.Children {
		if found := findPrefab(c, name); found != nil {
			return found
		}
	}
	return nil
}

// removePrefab drops the named node and its subtree.
func removePrefab(p *scene.Prefab, name string) bool {
	for i, c := range p.Children {
		if c.Name == name {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			return true
		}
		if removePrefab(c, name) {
			return true
		}
	}
	return false
}

// skipPrefab removes the named node but keeps its children attached to its
// parent.
func skipPrefab(t *testing.T, root *scene.Prefab, name string) {
	t.Helper()
	var walk func(p *scene.Prefab) bool
	walk = func(p *scene.Prefab) bool {
		for i, c := range p.Children {
			if c.Name == name {
				children := append([]*scene.Prefab{}, p.Children[:i]...)
				children = append(children, c.Children...)
				p.Children = append(children, p.Children[i+1:]...)
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	if !walk(root) {
		t.Fatalf("prefab node %q not found", name)
	}
}

func bindHand(t *testing.T, g *scene.Graph, parent scene.NodeID, h hand.Handedness, log *zap.Logger) *Rig {
	t.Helper()
	rig, err := BindRig(g, BindOptions{
		Handedness: h,
		Parent:     parent,
		Assets:     defaultAssets(h),
		Logger:     log,
	})
	require.NoError(t, err)
	return rig
}

type graphState struct {
	poses map[scene.NodeID]math.Pose
	lines map[*scene.LineRenderer][2]math.Vec3
}

func captureState(g *scene.Graph) graphState {
	s := graphState{
		poses: make(map[scene.NodeID]math.Pose),
		lines: make(map[*scene.LineRenderer][2]math.Vec3),
	}
	for _, root := range g.Roots() {
		g.Walk(root, func(id scene.NodeID) bool {
			s.poses[id] = g.LocalPose(id)
			for _, c := range g.Components(id) {
				if l, ok := c.(*scene.LineRenderer); ok {
					s.lines[l] = l.Points
				}
			}
			return true
		})
	}
	return s
}
