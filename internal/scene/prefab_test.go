package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/handviz/pkg/math"
)

const handPrefabYAML = `
name: RightHand
children:
  - name: R_HandMesh
    components:
      - type: skinned_mesh
        root_bone: R_Wrist
        color: [0.8, 0.7, 0.6]
  - name: R_Armature
    children:
      - name: R_Wrist
        position: [0, 0.01, 0]
        children:
          - name: R_Palm
            position: [0, 0, 0.045]
`

func TestParsePrefab(t *testing.T) {
	p, err := ParsePrefab([]byte(handPrefabYAML))
	require.NoError(t, err)

	assert.Equal(t, "RightHand", p.Name)
	assert.Equal(t, 5, p.Count())
	require.Len(t, p.Children, 2)
	assert.Equal(t, "skinned_mesh", p.Children[0].Components[0].Type)

	wrist := p.Children[1].Children[0]
	assert.Equal(t, math.QuatIdentity(), wrist.LocalPose().Rotation, "omitted rotation is identity")
	assert.Equal(t, math.Vec3{Y: 0.01}, wrist.LocalPose().Position)
}

func TestParsePrefabRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unnamed child", "name: root\nchildren:\n  - position: [0, 0, 0]\n"},
		{"unknown component", "name: root\ncomponents:\n  - type: particle\n"},
		{"malformed yaml", "name: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrefab([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := ParsePrefab([]byte("name: root\ncomponents:\n  - type: particle\n"))
	assert.ErrorIs(t, err, ErrInvalidPrefab)
}

func TestPrefabMarshalRoundTrip(t *testing.T) {
	p, err := ParsePrefab([]byte(handPrefabYAML))
	require.NoError(t, err)

	data, err := p.Marshal()
	require.NoError(t, err)

	back, err := ParsePrefab(data)
	require.NoError(t, err)
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInstantiate(t *testing.T) {
	p, err := ParsePrefab([]byte(handPrefabYAML))
	require.NoError(t, err)

	g := NewGraph()
	parent := g.Create("Hands", NoNode)
	first := g.Instantiate(p, parent)
	second := g.Instantiate(p, parent)

	assert.Equal(t, 1+2*p.Count(), g.Len())
	assert.NotEqual(t, first, second)

	wrist, ok := g.FindInSubtree(first, "R_Wrist")
	require.True(t, ok)
	assert.Equal(t, math.Vec3{Y: 0.01}, g.LocalPose(wrist).Position)

	mesh, ok := g.FindChild(first, func(name string) bool { return name == "R_HandMesh" })
	require.True(t, ok)
	smr, ok := GetComponent[*SkinnedMeshRenderer](g, mesh)
	require.True(t, ok)
	assert.Equal(t, wrist, smr.RootBone, "root bone resolves inside its own instance")
	assert.True(t, smr.Enabled())

	// Instances do not share components
	mesh2, _ := g.FindChild(second, func(name string) bool { return name == "R_HandMesh" })
	smr2, _ := GetComponent[*SkinnedMeshRenderer](g, mesh2)
	smr.SetEnabled(false)
	assert.True(t, smr2.Enabled())
}

func TestInstantiateDisabledComponent(t *testing.T) {
	p := &Prefab{
		Name:       "Velocity",
		Components: []ComponentSpec{{Type: "line", Width: 0.002, Disabled: true}},
	}
	g := NewGraph()
	id := g.Instantiate(p, NoNode)

	line, ok := GetComponent[*LineRenderer](g, id)
	require.True(t, ok)
	assert.False(t, line.Enabled())
	assert.Equal(t, float32(0.002), line.Width)
}
