package repl

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const defaultHistorySize = 1000

// History manages command history for the REPL.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a history stored at ~/.skywalker/history.
func NewHistory() *History {
	homeDir, _ := os.UserHomeDir()
	return NewFileHistory(filepath.Join(homeDir, ".skywalker", "history"))
}

// NewFileHistory creates a history stored at path.
func NewFileHistory(path string) *History {
	return &History{
		maxSize: defaultHistorySize,
		file:    path,
	}
}

// Add appends cmd. Lines that could carry a password are not recorded.
func (h *History) Add(cmd string) {
	if containsSecret(cmd) {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

func containsSecret(cmd string) bool {
	args, err := SplitArgs(cmd)
	if err != nil {
		args = strings.Fields(cmd)
	}
	for _, a := range args {
		name, _, _ := strings.Cut(strings.Trim(a, `"'`), "=")
		switch name {
		case "-p", "--p", "-password", "--password":
			return true
		}
	}
	return false
}

// Get returns the history entry at index (0 = most recent).
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Entries returns the history, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Load loads history from file.
func (h *History) Load() error {
	file, err := os.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	return scanner.Err()
}

// Save saves history to file with mode 0600.
func (h *History) Save() error {
	if err := os.MkdirAll(filepath.Dir(h.file), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(h.file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
