// Package domain defines the core domain models for SkyWalker.
package domain

import "github.com/google/uuid"

// BeaconUUID is the proximity UUID every SkyWalker beacon advertises.
var BeaconUUID = uuid.MustParse("3E8C0296-168B-4940-ADB0-B3088F7EE30E")

// Tag is a trackable point of interest.
type Tag struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Position is a tag's approximate location: the coordinates of the
// landmark nearest to it.
type Position struct {
	TagID int     `json:"tag_id" yaml:"tag_id"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     int     `json:"z" yaml:"z"`
}

// PositionFrom projects a landmark's coordinates onto a tag.
func PositionFrom(tag Tag, l Landmark) Position {
	return Position{
		TagID: tag.ID,
		X:     l.X,
		Y:     l.Y,
		Z:     l.Z,
	}
}

// BeaconFrame holds the iBeacon broadcast parameters assigned to a device.
type BeaconFrame struct {
	UUID  uuid.UUID `json:"uuid" yaml:"uuid"`
	Major int       `json:"major" yaml:"major"`
	Minor int       `json:"minor" yaml:"minor"`
}

// NewBeaconFrame creates a frame advertising BeaconUUID.
func NewBeaconFrame(major, minor int) BeaconFrame {
	return BeaconFrame{
		UUID:  BeaconUUID,
		Major: major,
		Minor: minor,
	}
}
