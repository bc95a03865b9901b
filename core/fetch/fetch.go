package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RemoteConfig locates one vendor feed.
type RemoteConfig struct {
	Source     string
	Protocol   string
	Host       string
	Port       int
	User       string
	Secret     string
	RemotePath string
}

// Transport downloads one file from a remote location into w.
type Transport interface {
	Download(ctx context.Context, rc RemoteConfig, w io.Writer) error
}

// Fetcher retrieves feeds with bounded retries and exponential backoff.
type Fetcher struct {
	transports  map[string]Transport
	maxAttempts int
	baseDelay   time.Duration
	timeout     time.Duration
	tempDir     string
	logger      *zap.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// New creates a fetcher. Transports are keyed by lower-case protocol name.
func New(cfg Config, logger *zap.Logger, transports map[string]Transport) *Fetcher {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	delay := time.Duration(cfg.BaseDelayMS) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	registered := make(map[string]Transport, len(transports))
	for name, t := range transports {
		registered[strings.ToLower(name)] = t
	}
	return &Fetcher{
		transports:  registered,
		maxAttempts: attempts,
		baseDelay:   delay,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		tempDir:     cfg.TempDir,
		logger:      logger,
		sleep:       sleepContext,
	}
}

// Fetch downloads the feed described by rc and returns its bytes.
func (f *Fetcher) Fetch(ctx context.Context, rc RemoteConfig) ([]byte, error) {
	transport, ok := f.transports[strings.ToLower(rc.Protocol)]
	if !ok {
		return nil, fmt.Errorf("source %s: %w: %q", rc.Source, ErrUnsupportedProtocol, rc.Protocol)
	}

	l := f.logger.With(zap.String("source", rc.Source), zap.String("protocol", rc.Protocol), zap.String("path", rc.RemotePath))

	var lastErr error
	kind := KindTransient
	attempt := 0
	for attempt < f.maxAttempts {
		if attempt > 0 {
			delay := f.baseDelay << (attempt - 1)
			l.Debug("Waiting before retry", zap.Int("attempt", attempt+1), zap.Duration("delay", delay))
			if err := f.sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}
		attempt++

		data, err := f.attempt(ctx, transport, rc)
		if err == nil {
			l.Debug("Fetched feed", zap.Int("attempt", attempt), zap.Int("bytes", len(data)))
			return data, nil
		}

		lastErr = err
		kind = KindOf(err)
		l.Warn("Fetch attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", f.maxAttempts),
			zap.String("failure", string(kind)),
			zap.Error(err))

		if kind == KindNotFound || ctx.Err() != nil {
			break
		}
	}

	return nil, &FetchError{
		Source:   rc.Source,
		Path:     rc.RemotePath,
		Kind:     kind,
		Attempts: attempt,
		Err:      lastErr,
	}
}

// attempt streams one download through a temp file so partial transfers never reach the caller.
func (f *Fetcher) attempt(ctx context.Context, transport Transport, rc RemoteConfig) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	tmp, err := os.CreateTemp(f.tempDir, "feed-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := transport.Download(ctx, rc, tmp); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush temp file: %w", err)
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read temp file: %w", err)
	}
	return data, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
