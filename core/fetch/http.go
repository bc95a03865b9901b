package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// HTTPTransport downloads feeds over HTTP(S) with optional basic auth.
type HTTPTransport struct {
	Client *http.Client
	// Scheme is used when RemotePath is not already an absolute URL.
	Scheme string
}

// Download issues a GET for the feed URL and copies the body into w.
func (t *HTTPTransport) Download(ctx context.Context, rc RemoteConfig, w io.Writer) error {
	url := t.url(rc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if rc.User != "" {
		req.SetBasicAuth(rc.User, rc.Secret)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Classify(KindTransient, fmt.Errorf("GET %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Classify(statusKind(resp.StatusCode), fmt.Errorf("GET %s: status %d", url, resp.StatusCode))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return Classify(KindTransient, fmt.Errorf("failed to read body of %s: %w", url, err))
	}
	return nil
}

func (t *HTTPTransport) url(rc RemoteConfig) string {
	if strings.HasPrefix(rc.RemotePath, "http://") || strings.HasPrefix(rc.RemotePath, "https://") {
		return rc.RemotePath
	}
	scheme := t.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := rc.Host
	if rc.Port != 0 {
		host = net.JoinHostPort(rc.Host, strconv.Itoa(rc.Port))
	}
	return scheme + "://" + host + "/" + strings.TrimPrefix(rc.RemotePath, "/")
}

func statusKind(code int) Kind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound, http.StatusGone:
		return KindNotFound
	}
	return KindTransient
}
