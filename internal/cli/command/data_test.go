package command

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/skywalker-go/internal/core/domain"
)

func TestReceivers(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)
	st := newTestState()

	out, err := runApp(t, st, withLogin(srv, "-o", "json", "receivers")...)
	if err != nil {
		t.Fatalf("receivers: %v", err)
	}
	var got []domain.Landmark
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := []domain.Landmark{{ID: 1, X: 1.5, Y: 2, Z: 0}, {ID: 2, X: 10, Y: 20.25, Z: 3}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("receivers = %+v, want %+v", got, want)
	}
	if n := srv.receiverCalls.Load(); n != 1 {
		t.Errorf("receiver calls = %d, want 1 (loaded at login)", n)
	}

	out, err = runApp(t, st, "rdhubs", "--refresh")
	if err != nil {
		t.Fatalf("rdhubs --refresh: %v", err)
	}
	mustContain(t, out, "FLOOR", "20.25")
	if n := srv.receiverCalls.Load(); n != 2 {
		t.Errorf("receiver calls = %d, want 2", n)
	}
}

func TestTagsList(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)

	out, err := runApp(t, newTestState(), withLogin(srv, "tags", "list")...)
	if err != nil {
		t.Fatalf("tags list: %v", err)
	}
	mustContain(t, out, "NAME", "Cart", "Forklift", "Not assigned")
}

func TestTagsList_SpanishPlaceholder(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)
	st := newTestState()

	if _, err := runApp(t, st, "config", "set", "language", "es"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := runApp(t, st, withLogin(srv, "tags", "ls")...)
	if err != nil {
		t.Fatalf("tags ls: %v", err)
	}
	mustContain(t, out, "Sin asignar")
}

func TestTagsRegister(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)

	out, err := runApp(t, newTestState(), withLogin(srv, "-o", "json", "tags", "register", "My", "phone")...)
	if err != nil {
		t.Fatalf("tags register: %v", err)
	}
	var got beaconView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := beaconView{
		Name:  "My phone",
		UUID:  strings.ToLower("3E8C0296-168B-4940-ADB0-B3088F7EE30E"),
		Major: 100,
		Minor: 5,
	}
	if got != want {
		t.Errorf("register = %+v, want %+v", got, want)
	}
}

func TestTagsRegister_NameRequired(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)

	_, err := runApp(t, newTestState(), withLogin(srv, "tags", "register")...)
	if err == nil || !strings.Contains(err.Error(), "name required") {
		t.Errorf("error = %v", err)
	}
	if n := srv.authCalls.Load(); n != 0 {
		t.Errorf("auth calls = %d, want 0", n)
	}
}

func TestPosition(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)

	out, err := runApp(t, newTestState(), withLogin(srv, "-o", "json", "position", "10", "11")...)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	var rows []positionRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if r := rows[0]; r.TagID != 10 || r.Status != statusOK || r.X == nil || *r.X != 10 || *r.Y != 20.25 || *r.Z != 3 {
		t.Errorf("tag 10 = %+v", r)
	}
	if r := rows[1]; r.TagID != 11 || r.Status != statusNoUpdate || r.X != nil {
		t.Errorf("tag 11 = %+v", r)
	}
}

func TestPosition_UnknownReceiver(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)

	out, err := runApp(t, newTestState(), withLogin(srv, "pos", "10", "12")...)
	if err == nil {
		t.Fatal("expected error for tag 12")
	}
	if domain.KindOf(err) != domain.InvalidResponseBody {
		t.Errorf("kind = %v, want INVALID_RESPONSE_BODY", domain.KindOf(err))
	}
	mustContain(t, out, "INVALID_RESPONSE_BODY", "ok")
}

func TestPosition_BadArgs(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)

	for _, args := range [][]string{{"position"}, {"position", "ten"}} {
		_, err := runApp(t, newTestState(), withLogin(srv, args...)...)
		if err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
	if n := srv.authCalls.Load(); n != 0 {
		t.Errorf("auth calls = %d, want 0", n)
	}
}

func TestParseTagIDs(t *testing.T) {
	ids, err := parseTagIDs([]string{"1", "20", "300"})
	if err != nil || len(ids) != 3 || ids[2] != 300 {
		t.Errorf("parseTagIDs = %v, %v", ids, err)
	}
	if _, err := parseTagIDs([]string{"1", "x"}); err == nil {
		t.Error("expected error")
	}
}

func TestVersion(t *testing.T) {
	testEnv(t)

	out, err := runApp(t, newTestState(), "-o", "json", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	for _, k := range []string{"version", "go_version", "platform"} {
		if info[k] == "" {
			t.Errorf("%s missing in %v", k, info)
		}
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	testEnv(t)
	_, err := runApp(t, newTestState(), "-o", "xml", "version")
	if err == nil {
		t.Error("expected error for -o xml")
	}
}

func TestPrintError(t *testing.T) {
	var b strings.Builder
	PrintError(&b, errors.New("boom"))
	if b.String() != "error: boom\n" {
		t.Errorf("PrintError = %q", b.String())
	}
}
