package tlsroots

import (
	"crypto/tls"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func serverPEM(t *testing.T, srv *httptest.Server) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
}

func newTLSServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewPool(t *testing.T) {
	if NewPool().Pool() == nil {
		t.Fatal("Pool() returned nil")
	}
	if NewEmptyPool().Pool() == nil {
		t.Fatal("empty Pool() returned nil")
	}
}

func TestAddCertPEM(t *testing.T) {
	srv := newTLSServer(t)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"certificate", serverPEM(t, srv), nil},
		{"empty", nil, ErrNoCertsFound},
		{"garbage", []byte("not pem"), ErrNoCertsFound},
		{"only key block", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1}}), ErrNoCertsFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEmptyPool().AddCertPEM(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddCertPEM() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddCertPEM_BadCertificate(t *testing.T) {
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("junk")})
	if err := NewEmptyPool().AddCertPEM(data); err == nil || errors.Is(err, ErrNoCertsFound) {
		t.Errorf("AddCertPEM() error = %v, want parse error", err)
	}
}

func TestAddCertFile_Missing(t *testing.T) {
	err := NewEmptyPool().AddCertFile(filepath.Join(t.TempDir(), "none.pem"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("AddCertFile() error = %v", err)
	}
}

func TestClientConfig_TrustsCAFile(t *testing.T) {
	srv := newTLSServer(t)

	// Without the CA the handshake fails.
	plain := &http.Client{Transport: &http.Transport{TLSClientConfig: NewEmptyPool().TLSConfig()}}
	if _, err := plain.Get(srv.URL); err == nil {
		t.Fatal("expected verification failure without the CA")
	}

	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, serverPEM(t, srv), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := ClientConfig(path)
	if err != nil {
		t.Fatalf("ClientConfig() error = %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %x", cfg.MinVersion)
	}

	c := &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
