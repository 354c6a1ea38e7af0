// Package domain defines the core domain models for SkyWalker.
package domain

import "sync/atomic"

// Landmark is a fixed reference point of a center's map.
// The server API calls it a receiver (rdhub).
type Landmark struct {
	ID int     `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
	Z  int     `json:"z" yaml:"z"`
}

// LandmarkDirectory is the in-memory landmark index of a center.
//
// Contents are published as one immutable snapshot, so readers never see a
// partially filled directory. Replace swaps the whole snapshot.
type LandmarkDirectory struct {
	snap atomic.Pointer[landmarkSnapshot]
}

type landmarkSnapshot struct {
	ordered []Landmark
	byID    map[int]Landmark
}

// NewLandmarkDirectory creates an empty, not yet loaded directory.
func NewLandmarkDirectory() *LandmarkDirectory {
	return &LandmarkDirectory{}
}

// Replace installs landmarks as the directory contents.
// For duplicate ids the last entry wins on lookup; All keeps every entry.
func (d *LandmarkDirectory) Replace(landmarks []Landmark) {
	s := &landmarkSnapshot{
		ordered: make([]Landmark, len(landmarks)),
		byID:    make(map[int]Landmark, len(landmarks)),
	}
	copy(s.ordered, landmarks)
	for _, l := range landmarks {
		s.byID[l.ID] = l
	}
	d.snap.Store(s)
}

// Lookup returns the landmark whose id matches exactly.
func (d *LandmarkDirectory) Lookup(id int) (Landmark, bool) {
	s := d.snap.Load()
	if s == nil {
		return Landmark{}, false
	}
	l, ok := s.byID[id]
	return l, ok
}

// All returns a copy of the landmarks in fetch order.
func (d *LandmarkDirectory) All() []Landmark {
	s := d.snap.Load()
	if s == nil {
		return nil
	}
	out := make([]Landmark, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the number of landmarks installed.
func (d *LandmarkDirectory) Len() int {
	s := d.snap.Load()
	if s == nil {
		return 0
	}
	return len(s.ordered)
}

// Loaded reports whether Replace has been called at least once.
func (d *LandmarkDirectory) Loaded() bool {
	return d.snap.Load() != nil
}
