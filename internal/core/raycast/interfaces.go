package raycast

import "github.com/touchsync/touchsync/internal/core/geometry"

// Raycaster resolves a screen position to the world object under it.
// Implemented by Scene for retained 2D scenes; hosts with their own camera
// and world representation supply their own implementation.
type Raycaster interface {
	// FromCamera casts through the camera at a screen position. The second
	// return is false on a miss. A miss is not an error.
	FromCamera(screen geometry.Vec2) (*Node, bool)
}
