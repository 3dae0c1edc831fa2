package scene

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/handviz/pkg/math"
)

// ErrInvalidPrefab is returned when a prefab fails validation.
var ErrInvalidPrefab = errors.New("invalid prefab")

// Prefab is an authored node template that can be instantiated any number
// of times. It is the YAML form of a scene subtree.
type Prefab struct {
	Name       string          `yaml:"name"`
	Position   [3]float32      `yaml:"position,flow,omitempty"`
	Rotation   [4]float32      `yaml:"rotation,flow,omitempty"` // x y z w, zero means identity
	Components []ComponentSpec `yaml:"components,omitempty"`
	Children   []*Prefab       `yaml:"children,omitempty"`
}

// ComponentSpec describes one component in a prefab.
type ComponentSpec struct {
	Type     string     `yaml:"type"` // skinned_mesh, mesh or line
	Disabled bool       `yaml:"disabled,omitempty"`
	Shape    string     `yaml:"shape,omitempty"`
	Size     float32    `yaml:"size,omitempty"`
	Width    float32    `yaml:"width,omitempty"`
	Color    [3]float32 `yaml:"color,flow,omitempty"`
	RootBone string     `yaml:"root_bone,omitempty"`
}

// ParsePrefab decodes and validates a YAML prefab.
func ParsePrefab(data []byte) (*Prefab, error) {
	var p Prefab
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding prefab: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes the prefab as YAML.
func (p *Prefab) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks that every node is named and every component type is known.
func (p *Prefab) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil prefab", ErrInvalidPrefab)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: node without a name", ErrInvalidPrefab)
	}
	for _, c := range p.Components {
		switch c.Type {
		case "skinned_mesh", "mesh", "line":
		default:
			return fmt.Errorf("%w: node %q: unknown component type %q", ErrInvalidPrefab, p.Name, c.Type)
		}
	}
	for _, child := range p.Children {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LocalPose returns the prefab node's authored local pose.
func (p *Prefab) LocalPose() math.Pose {
	return math.NewPose(math.Vec3FromArray(p.Position), math.QuatFromArray(p.Rotation))
}

// Count returns the number of nodes in the prefab tree.
func (p *Prefab) Count() int {
	n := 1
	for _, c := range p.Children {
		n += c.Count()
	}
	return n
}

func (c ComponentSpec) build() Component {
	var r Renderer
	switch c.Type {
	case "skinned_mesh":
		r = NewSkinnedMeshRenderer(c.Color)
	case "mesh":
		r = NewMeshRenderer(c.Shape, c.Size, c.Color)
	case "line":
		r = NewLineRenderer(c.Width, c.Color)
	default:
		return nil
	}
	r.SetEnabled(!c.Disabled)
	return r
}

// Instantiate creates a fresh copy of the prefab under parent and returns
// the new subtree root. Every node, the root included, starts at its
// authored local pose. Skinned mesh root bones are resolved by name inside
// the new subtree.
func (g *Graph) Instantiate(p *Prefab, parent NodeID) NodeID {
	var bones []pendingBone
	root := g.instantiate(p, parent, &bones)
	for _, b := range bones {
		if id, ok := g.FindInSubtree(root, b.name); ok {
			b.renderer.RootBone = id
		}
	}
	return root
}

type pendingBone struct {
	renderer *SkinnedMeshRenderer
	name     string
}

func (g *Graph) instantiate(p *Prefab, parent NodeID, bones *[]pendingBone) NodeID {
	id := g.Create(p.Name, parent)
	g.SetLocalPose(id, p.LocalPose())
	for _, spec := range p.Components {
		c := spec.build()
		if c == nil {
			continue
		}
		if sm, ok := c.(*SkinnedMeshRenderer); ok && spec.RootBone != "" {
			*bones = append(*bones, pendingBone{renderer: sm, name: spec.RootBone})
		}
		g.AddComponent(id, c)
	}
	for _, child := range p.Children {
		g.instantiate(child, id, bones)
	}
	return id
}
