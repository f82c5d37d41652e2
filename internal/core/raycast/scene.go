package raycast

import "github.com/touchsync/touchsync/internal/core/geometry"

// Node is one retained scene element. Bounds are world-space axis-aligned
// boxes; children draw on top of their parent, later siblings on top of
// earlier ones.
type Node struct {
	ID           string
	Bounds       geometry.Rect
	Interactable bool
	Visible      bool

	Parent   *Node
	Children []*Node
}

// InteractableAncestor walks from n up through its ancestors and returns the
// first node tagged interactable, n itself included. The second return is
// false when no ancestor carries the tag.
func InteractableAncestor(n *Node) (*Node, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Interactable {
			return cur, true
		}
	}
	return nil, false
}

// Scene is a minimal retained scene graph with bounds-based hit testing,
// enough to stand in for a host engine's world in tests and the simulator.
type Scene struct {
	root *Node
	byID map[string]*Node
}

var _ Raycaster = (*Scene)(nil)

// NewScene creates a scene with an invisible, unbounded root.
func NewScene() *Scene {
	s := &Scene{byID: make(map[string]*Node)}
	s.root = &Node{ID: "root"}
	s.byID[s.root.ID] = s.root
	return s
}

// Root returns the scene root.
func (s *Scene) Root() *Node { return s.root }

// Add attaches a node under parent (nil means the root) and indexes it by ID.
func (s *Scene) Add(parent, n *Node) *Node {
	if parent == nil {
		parent = s.root
	}
	n.Parent = parent
	parent.Children = append(parent.Children, n)
	s.byID[n.ID] = n
	return n
}

// Find returns the node with the given ID.
func (s *Scene) Find(id string) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// FromCamera hit-tests front to back: the deepest, topmost visible node whose
// bounds contain the point wins.
func (s *Scene) FromCamera(screen geometry.Vec2) (*Node, bool) {
	hit := hitTest(s.root, screen)
	if hit == nil || hit == s.root {
		return nil, false
	}
	return hit, true
}

func hitTest(n *Node, p geometry.Vec2) *Node {
	// Children first, last sibling on top.
	for i := len(n.Children) - 1; i >= 0; i-- {
		if hit := hitTest(n.Children[i], p); hit != nil {
			return hit
		}
	}
	if n.Parent != nil {
		if !n.Visible || n.Bounds.IsEmpty() || !n.Bounds.Contains(p) {
			return nil
		}
	}
	return n
}
