// Package domain defines the core domain models for SkyWalker.
package domain

// Center is one physical deployment site grouping landmarks and tags.
type Center struct {
	id        int
	landmarks *LandmarkDirectory
}

// NewCenter creates a center with an empty landmark directory.
func NewCenter(id int) *Center {
	return &Center{
		id:        id,
		landmarks: NewLandmarkDirectory(),
	}
}

// ID returns the center identifier.
func (c *Center) ID() int {
	return c.id
}

// Landmarks returns the center's landmark directory.
func (c *Center) Landmarks() *LandmarkDirectory {
	return c.landmarks
}

// Landmark looks up a landmark by id without contacting the server.
func (c *Center) Landmark(id int) (Landmark, bool) {
	return c.landmarks.Lookup(id)
}
