package fetch

import (
	"errors"
	"fmt"
)

// ErrUnsupportedProtocol is returned for a remote config naming an unknown transport.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// Kind classifies a failed attempt.
type Kind string

const (
	// KindTransient covers network drops, timeouts and server errors.
	KindTransient Kind = "transient"
	// KindAuth is a credential rejection. It is retried like a transient failure.
	KindAuth Kind = "auth"
	// KindNotFound means the remote file does not exist. It is not retried.
	KindNotFound Kind = "not_found"
)

// FetchError is returned once every attempt for a source has failed.
type FetchError struct {
	Source   string
	Path     string
	Kind     Kind
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %s after %d attempt(s): %v", e.Source, e.Path, e.Kind, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type classifiedError struct {
	kind Kind
	err  error
}

func (e *classifiedError) Error() string { return e.err.Error() }
func (e *classifiedError) Unwrap() error { return e.err }

// Classify tags err with a failure kind. Transports use it so the fetcher can decide on retries.
func Classify(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &classifiedError{kind: kind, err: err}
}

// KindOf returns the kind attached by Classify, or KindTransient.
func KindOf(err error) Kind {
	var ce *classifiedError
	if errors.As(err, &ce) {
		return ce.kind
	}
	return KindTransient
}
