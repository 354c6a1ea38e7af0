package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_Add(t *testing.T) {
	h := NewFileHistory("")
	h.Add("one")
	h.Add("two")
	h.Add("two")
	h.Add("login -p secret")
	h.Add("login --password=secret")

	if got := h.Entries(); len(got) != 2 {
		t.Fatalf("Entries() = %q, want [one two]", got)
	}
	if h.Get(0) != "two" || h.Get(1) != "one" || h.Get(2) != "" {
		t.Errorf("Get() order wrong: %q", h.Entries())
	}
}

func TestHistory_SkipsPasswordForms(t *testing.T) {
	for _, line := range []string{
		"login -p hunter2",
		"login -p=hunter2",
		"login --p=hunter2",
		"login --password hunter2",
		"login --password=hunter2",
		"login -password=hunter2",
		`login "--password" hunter2`,
		`login '-p' hunter2`,
		`login -p "hunter2`,
	} {
		h := NewFileHistory("")
		h.Add(line)
		if got := h.Entries(); len(got) != 0 {
			t.Errorf("Add(%q) recorded %q", line, got)
		}
	}

	h := NewFileHistory("")
	h.Add("login --server http://x -u alice")
	h.Add("tags position -pos 1")
	if got := h.Entries(); len(got) != 2 {
		t.Errorf("Entries() = %q, want both lines kept", got)
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewFileHistory("")
	h.maxSize = 3
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		h.Add(c)
	}
	if got := h.Entries(); len(got) != 3 || got[0] != "c" {
		t.Errorf("Entries() = %q, want [c d e]", got)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")
	h := NewFileHistory(path)
	h.Add("login")
	h.Add("tags list")
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %o, want 0600", info.Mode().Perm())
	}

	loaded := NewFileHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Get(0) != "tags list" || loaded.Get(1) != "login" {
		t.Errorf("loaded = %q", loaded.Entries())
	}
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewFileHistory(filepath.Join(t.TempDir(), "none"))
	if err := h.Load(); err != nil {
		t.Errorf("Load of missing file: %v", err)
	}
}
