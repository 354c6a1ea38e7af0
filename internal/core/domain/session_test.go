package domain

import (
	"sync"
	"testing"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	if s.IsLoggedIn() {
		t.Fatal("new session should not be logged in")
	}

	s.Login(NewToken("http://srv", "abc"))
	if s.IsLoggedIn() {
		t.Error("token alone should not make the session logged in")
	}

	s.SelectCenter(NewCenter(3))
	if !s.IsLoggedIn() {
		t.Fatal("token and center should make the session logged in")
	}

	if got := s.CurrentToken().Value(); got != "abc" {
		t.Errorf("CurrentToken().Value() = %q, want %q", got, "abc")
	}
	if got := s.CurrentCenter().ID(); got != 3 {
		t.Errorf("CurrentCenter().ID() = %d, want 3", got)
	}

	s.Logout()
	if s.IsLoggedIn() {
		t.Error("Logout should clear the session")
	}
	if !s.CurrentToken().IsZero() {
		t.Error("CurrentToken should be zero after Logout")
	}
}

func TestSession_CenterWithoutToken(t *testing.T) {
	s := NewSession()
	s.SelectCenter(NewCenter(1))
	if s.IsLoggedIn() {
		t.Error("center alone should not make the session logged in")
	}
	if _, _, ok := s.Snapshot(); ok {
		t.Error("Snapshot should report not ok")
	}
}

func TestSession_LoginKeepsCenter(t *testing.T) {
	s := NewSession()
	c := NewCenter(7)
	s.SelectCenter(c)
	s.Login(NewToken("http://a", "one"))
	s.Login(NewToken("http://b", "two"))

	tok, center, ok := s.Snapshot()
	if !ok {
		t.Fatal("expected logged in session")
	}
	if center != c {
		t.Error("Login should not replace the active center")
	}
	if tok.ServerURL() != "http://b" || tok.Value() != "two" {
		t.Errorf("Snapshot token = %v/%q, want http://b/two", tok.ServerURL(), tok.Value())
	}
}

func TestSession_TokenImmutable(t *testing.T) {
	s := NewSession()
	first := NewToken("http://a", "one")
	s.Login(first)
	s.Login(NewToken("http://a", "two"))

	if first.Value() != "one" {
		t.Error("a later login must not mutate an earlier token")
	}
}

func TestSession_ConcurrentSnapshot(t *testing.T) {
	s := NewSession()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Login(NewToken("http://srv", "tok"))
				s.SelectCenter(NewCenter(i))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if tok, center, ok := s.Snapshot(); ok {
					if tok.IsZero() || center == nil {
						t.Error("Snapshot returned a torn pair")
					}
				}
			}
		}()
	}
	wg.Wait()
}
