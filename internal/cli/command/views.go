package command

import (
	"strconv"

	"github.com/yndnr/skywalker-go/internal/cli/output"
	"github.com/yndnr/skywalker-go/internal/core/domain"
)

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

type landmarkList []domain.Landmark

func (l landmarkList) Table() *output.Table {
	t := output.NewTable("ID", "X", "Y", "FLOOR")
	for _, lm := range l {
		t.AddRow(formatInt(lm.ID), output.FormatCoord(lm.X), output.FormatCoord(lm.Y), formatInt(lm.Z))
	}
	return t
}

type tagList []domain.Tag

func (l tagList) Table() *output.Table {
	t := output.NewTable("ID", "NAME")
	for _, tag := range l {
		t.AddRow(formatInt(tag.ID), tag.Name)
	}
	return t
}

// beaconView is the registration result.
type beaconView struct {
	Name  string `json:"name" yaml:"name"`
	UUID  string `json:"uuid" yaml:"uuid"`
	Major int    `json:"major" yaml:"major"`
	Minor int    `json:"minor" yaml:"minor"`
}

func (b beaconView) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("name", b.Name)
	t.AddRow("uuid", b.UUID)
	t.AddRow("major", formatInt(b.Major))
	t.AddRow("minor", formatInt(b.Minor))
	return t
}

// Position statuses shown by position and track.
const (
	statusOK       = "ok"
	statusNoUpdate = "no update"
	statusPending  = "pending"
)

// positionRow is one tag's last known position.
type positionRow struct {
	TagID  int      `json:"tag_id" yaml:"tag_id"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	X      *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Z      *int     `json:"z,omitempty" yaml:"z,omitempty"`
	Status string   `json:"status" yaml:"status"`
}

func newPositionRow(tag domain.Tag, pos *domain.Position, status string) positionRow {
	r := positionRow{TagID: tag.ID, Name: tag.Name, Status: status}
	if pos != nil {
		x, y, z := pos.X, pos.Y, pos.Z
		r.X, r.Y, r.Z = &x, &y, &z
	}
	return r
}

type positionList []positionRow

func (l positionList) Table() *output.Table {
	t := output.NewTable("TAG", "NAME", "X", "Y", "FLOOR", "STATUS")
	for _, r := range l {
		x, y, z := "-", "-", "-"
		if r.X != nil {
			x, y, z = output.FormatCoord(*r.X), output.FormatCoord(*r.Y), formatInt(*r.Z)
		}
		name := r.Name
		if name == "" {
			name = "-"
		}
		t.AddRow(formatInt(r.TagID), name, x, y, z, r.Status)
	}
	return t
}
