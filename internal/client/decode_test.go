package client

import (
	"errors"
	"testing"

	"github.com/yndnr/skywalker-go/internal/core/domain"
)

func TestDecodeBeaconFrame(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    domain.BeaconFrame
		wantErr bool
	}{
		{"valid", `{"major":1,"minor":2}`, domain.NewBeaconFrame(1, 2), false},
		{"extra fields", `{"id":5,"name":"x","major":0,"minor":0}`, domain.NewBeaconFrame(0, 0), false},
		{"missing major", `{"minor":2}`, domain.BeaconFrame{}, true},
		{"float minor", `{"major":1,"minor":2.5}`, domain.BeaconFrame{}, true},
		{"string major", `{"major":"1","minor":2}`, domain.BeaconFrame{}, true},
		{"not json", `ok`, domain.BeaconFrame{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeBeaconFrame([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			var de *DecodeError
			if tt.wantErr && !errors.As(err, &de) {
				t.Errorf("error %T is not a *DecodeError", err)
			}
		})
	}
}

func TestDecodeLandmarks(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr bool
	}{
		{"empty", `[]`, 0, false},
		{"two", `[{"id":1,"x":1,"y":2,"z":0},{"id":2,"x":-1.5,"y":0,"z":3}]`, 2, false},
		{"integer coords", `[{"id":1,"x":1,"y":2,"z":0}]`, 1, false},
		{"missing z", `[{"id":1,"x":1,"y":2}]`, 0, true},
		{"float z", `[{"id":1,"x":1,"y":2,"z":0.5}]`, 0, true},
		{"string x", `[{"id":1,"x":"1","y":2,"z":0}]`, 0, true},
		{"null", `null`, 0, true},
		{"object", `{"id":1}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeLandmarks([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestDecodeLandmarks_KeepsOrder(t *testing.T) {
	got, err := decodeLandmarks([]byte(`[{"id":9,"x":0,"y":0,"z":0},{"id":3,"x":0,"y":0,"z":0},{"id":5,"x":0,"y":0,"z":0}]`))
	if err != nil {
		t.Fatal(err)
	}
	ids := [3]int{got[0].ID, got[1].ID, got[2].ID}
	if ids != [3]int{9, 3, 5} {
		t.Errorf("order = %v, want [9 3 5]", ids)
	}
}

func TestDecodeTags(t *testing.T) {
	decode := decodeTags("Unnamed")

	got, err := decode([]byte(`[{"id":1,"name":"A"},{"id":2,"name":null},{"id":3},{"id":4,"name":""}]`))
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.Tag{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "Unnamed"},
		{ID: 3, Name: "Unnamed"},
		{ID: 4, Name: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	for _, body := range []string{`[{"name":"x"}]`, `[{"id":1,"name":7}]`, `[{"id":"1"}]`, `null`} {
		if _, err := decode([]byte(body)); err == nil {
			t.Errorf("decode(%s) succeeded, want error", body)
		}
	}
}

func TestDecodePosition(t *testing.T) {
	center := domain.NewCenter(1)
	center.Landmarks().Replace([]domain.Landmark{{ID: 10, X: 1, Y: 2, Z: 3}})
	tag := domain.Tag{ID: 4, Name: "Cart"}
	decode := decodePosition(tag, center)

	pos, err := decode([]byte(`{"id":4,"nearest_rdhub":10}`))
	if err != nil {
		t.Fatal(err)
	}
	if want := (domain.Position{TagID: 4, X: 1, Y: 2, Z: 3}); pos != want {
		t.Errorf("pos = %+v, want %+v", pos, want)
	}

	if _, err := decode([]byte(`{"id":4}`)); !errors.Is(err, ErrNoUpdate) {
		t.Errorf("missing key: err = %v, want ErrNoUpdate", err)
	}

	for _, body := range []string{`{"nearest_rdhub":null}`, `{"nearest_rdhub":11}`, `{"nearest_rdhub":1.5}`, `null`, `"x"`} {
		_, err := decode([]byte(body))
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("decode(%s) err = %v, want *DecodeError", body, err)
		}
	}
}
