package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "acme" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/feeds/inventory.csv":
			w.Write([]byte("sku,quantity\nA1,4\n"))
		case "/gone.csv":
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	transport := &HTTPTransport{Client: srv.Client()}
	base := RemoteConfig{Source: "acme", Protocol: "http", User: "acme", Secret: "s3cret"}

	tests := []struct {
		name string
		path string
		user string
		kind Kind
		body string
	}{
		{name: "OK", path: srv.URL + "/feeds/inventory.csv", user: "acme", body: "sku,quantity\nA1,4\n"},
		{name: "Unauthorized", path: srv.URL + "/feeds/inventory.csv", user: "other", kind: KindAuth},
		{name: "Gone", path: srv.URL + "/gone.csv", user: "acme", kind: KindNotFound},
		{name: "Server error", path: srv.URL + "/boom", user: "acme", kind: KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := base
			rc.RemotePath = tt.path
			rc.User = tt.user
			var buf bytes.Buffer

			err := transport.Download(context.Background(), rc, &buf)

			if tt.kind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.body, buf.String())
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestHTTPTransport_URL(t *testing.T) {
	transport := &HTTPTransport{}
	assert.Equal(t, "https://feeds.example.com/a/b.csv",
		transport.url(RemoteConfig{Host: "feeds.example.com", RemotePath: "a/b.csv"}))
	assert.Equal(t, "https://feeds.example.com:8443/b.csv",
		transport.url(RemoteConfig{Host: "feeds.example.com", Port: 8443, RemotePath: "/b.csv"}))

	plain := &HTTPTransport{Scheme: "http"}
	assert.True(t, strings.HasPrefix(plain.url(RemoteConfig{Host: "h", RemotePath: "x"}), "http://h/"))
}
