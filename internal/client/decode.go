package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yndnr/skywalker-go/internal/core/domain"
)

// DefaultPlaceholder names tags the server sent without a name.
const DefaultPlaceholder = "Not assigned"

// ErrNoUpdate is delivered by LastPosition when the server has no nearest
// landmark for the tag. It is not a failure and is never classified.
var ErrNoUpdate = errors.New("client: no position update")

// DecodeError reports a response body that does not match the endpoint schema.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %v", e.What, e.Err)
	}
	return "decode " + e.What
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(what string, err error) error {
	return &DecodeError{What: what, Err: err}
}

type beaconWire struct {
	Major *int `json:"major"`
	Minor *int `json:"minor"`
}

func decodeBeaconFrame(body []byte) (domain.BeaconFrame, error) {
	var w beaconWire
	if err := json.Unmarshal(body, &w); err != nil {
		return domain.BeaconFrame{}, decodeErr("beacon frame", err)
	}
	if w.Major == nil || w.Minor == nil {
		return domain.BeaconFrame{}, decodeErr("beacon frame: missing major or minor", nil)
	}
	return domain.NewBeaconFrame(*w.Major, *w.Minor), nil
}

type receiverWire struct {
	ID *int     `json:"id"`
	X  *float64 `json:"x"`
	Y  *float64 `json:"y"`
	Z  *int     `json:"z"`
}

// decodeLandmarks decodes the rdhubs array. One bad element fails the list.
func decodeLandmarks(body []byte) ([]domain.Landmark, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, decodeErr("receivers", err)
	}
	if items == nil {
		return nil, decodeErr("receivers: not an array", nil)
	}

	out := make([]domain.Landmark, 0, len(items))
	for i, raw := range items {
		var w receiverWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, decodeErr(fmt.Sprintf("receiver %d", i), err)
		}
		if w.ID == nil || w.X == nil || w.Y == nil || w.Z == nil {
			return nil, decodeErr(fmt.Sprintf("receiver %d: missing id, x, y or z", i), nil)
		}
		out = append(out, domain.Landmark{ID: *w.ID, X: *w.X, Y: *w.Y, Z: *w.Z})
	}
	return out, nil
}

type tagWire struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// decodeTags decodes the tags array. A missing or null name becomes placeholder.
func decodeTags(placeholder string) func([]byte) ([]domain.Tag, error) {
	return func(body []byte) ([]domain.Tag, error) {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, decodeErr("tags", err)
		}
		if items == nil {
			return nil, decodeErr("tags: not an array", nil)
		}

		out := make([]domain.Tag, 0, len(items))
		for i, raw := range items {
			var w tagWire
			if err := json.Unmarshal(raw, &w); err != nil {
				return nil, decodeErr(fmt.Sprintf("tag %d", i), err)
			}
			if w.ID == nil {
				return nil, decodeErr(fmt.Sprintf("tag %d: missing id", i), nil)
			}
			name := placeholder
			if w.Name != nil {
				name = *w.Name
			}
			out = append(out, domain.Tag{ID: *w.ID, Name: name})
		}
		return out, nil
	}
}

// decodePosition resolves nearest_rdhub against center's directory.
func decodePosition(tag domain.Tag, center *domain.Center) func([]byte) (domain.Position, error) {
	return func(body []byte) (domain.Position, error) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return domain.Position{}, decodeErr("tag position", err)
		}
		if fields == nil {
			return domain.Position{}, decodeErr("tag position: not an object", nil)
		}

		raw, ok := fields["nearest_rdhub"]
		if !ok {
			return domain.Position{}, ErrNoUpdate
		}

		var id *int
		if err := json.Unmarshal(raw, &id); err != nil {
			return domain.Position{}, decodeErr("nearest_rdhub", err)
		}
		if id == nil {
			return domain.Position{}, decodeErr("nearest_rdhub: null", nil)
		}

		landmark, ok := center.Landmark(*id)
		if !ok {
			return domain.Position{}, decodeErr(fmt.Sprintf("nearest_rdhub: unknown receiver %d in center %d", *id, center.ID()), nil)
		}
		return domain.PositionFrom(tag, landmark), nil
	}
}
