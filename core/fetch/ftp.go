package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTPTransport downloads feeds from FTP servers.
type FTPTransport struct {
	Timeout time.Duration
}

// Download logs in, retrieves rc.RemotePath into w and quits.
func (t *FTPTransport) Download(ctx context.Context, rc RemoteConfig, w io.Writer) error {
	port := rc.Port
	if port == 0 {
		port = 21
	}
	addr := net.JoinHostPort(rc.Host, strconv.Itoa(port))

	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if t.Timeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(t.Timeout))
	}
	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return classifyFTP(fmt.Errorf("failed to connect to %s: %w", addr, err))
	}
	defer conn.Quit()

	user, pass := rc.User, rc.Secret
	if user == "" {
		user, pass = "anonymous", "anonymous"
	}
	if err := conn.Login(user, pass); err != nil {
		return classifyFTP(fmt.Errorf("failed to log in as %s: %w", user, err))
	}

	resp, err := conn.Retr(rc.RemotePath)
	if err != nil {
		return classifyFTP(fmt.Errorf("failed to retrieve %s: %w", rc.RemotePath, err))
	}
	defer resp.Close()

	if _, err := io.Copy(w, resp); err != nil {
		return classifyFTP(fmt.Errorf("failed to read %s: %w", rc.RemotePath, err))
	}
	return nil
}

func classifyFTP(err error) error {
	var reply *textproto.Error
	if errors.As(err, &reply) {
		switch reply.Code {
		case ftp.StatusNotLoggedIn:
			return Classify(KindAuth, err)
		case ftp.StatusFileUnavailable:
			return Classify(KindNotFound, err)
		}
	}
	return Classify(KindTransient, err)
}
