package assets

import (
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/pkg/hand"
)

const (
	// DebugMarkerSize is the edge length of the built-in joint marker.
	DebugMarkerSize = 0.008
	// VelocityLineWidth is the width of the built-in velocity line.
	VelocityLineWidth = 0.002
)

var (
	skinColor     = [3]float32{0.85, 0.72, 0.62}
	markerColor   = [3]float32{0.2, 0.9, 1.0}
	debugColor    = [3]float32{1.0, 1.0, 1.0}
	velocityColor = [3]float32{1.0, 0.35, 0.1}
)

// HandPrefab returns the built-in authored hierarchy for one hand:
//
//	<Side>Hand
//	├── <P>HandMesh        (skinned mesh, root bone <P>Wrist)
//	└── <P>Armature
//	    └── <P>Wrist
//	        ├── <P>Palm
//	        └── <P><Finger>Metacarpal → ... → <P><Finger>Tip
//
// where <P> is the handedness prefix. Joint nodes sit at their rest offsets.
func HandPrefab(h hand.Handedness) *scene.Prefab {
	p := h.Prefix()
	node := func(j hand.JointID) *scene.Prefab {
		return &scene.Prefab{Name: p + j.String(), Position: hand.RestOffset(h, j).Array()}
	}

	wrist := node(hand.Wrist)
	wrist.Children = append(wrist.Children, node(hand.Palm))
	for _, f := range hand.Fingers() {
		var parent *scene.Prefab
		for _, j := range f.Chain() {
			n := node(j)
			if parent == nil {
				wrist.Children = append(wrist.Children, n)
			} else {
				parent.Children = append(parent.Children, n)
			}
			parent = n
		}
	}

	return &scene.Prefab{
		Name: h.String() + "Hand",
		Children: []*scene.Prefab{
			{
				Name: p + "HandMesh",
				Components: []scene.ComponentSpec{
					{Type: "skinned_mesh", RootBone: p + hand.Wrist.String(), Color: skinColor},
				},
			},
			{
				Name:     p + "Armature",
				Children: []*scene.Prefab{wrist},
			},
		},
	}
}

// DebugMarkerPrefab returns the built-in debug joint: a line renderer for
// the connection to the chain parent and a child holding the marker mesh.
func DebugMarkerPrefab() *scene.Prefab {
	return &scene.Prefab{
		Name: "DebugJoint",
		Components: []scene.ComponentSpec{
			{Type: "line", Color: debugColor},
		},
		Children: []*scene.Prefab{
			{
				Name: "Marker",
				Components: []scene.ComponentSpec{
					{Type: "mesh", Shape: "cube", Size: DebugMarkerSize, Color: markerColor},
				},
			},
		},
	}
}

// VelocityPrefab returns the built-in velocity indicator.
func VelocityPrefab() *scene.Prefab {
	return &scene.Prefab{
		Name: "Velocity",
		Components: []scene.ComponentSpec{
			{Type: "line", Width: VelocityLineWidth, Color: velocityColor},
		},
	}
}
