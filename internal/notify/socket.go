package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	dialTimeout   = 2 * time.Second
	configPattern = "notification-*.conf"
	DefaultMaxAge = 24 * time.Hour
)

// SocketNotifier writes each notification to a .conf file in dir and sends
// the file's absolute path, newline terminated, to the daemon at addr.
type SocketNotifier struct {
	addr   string
	dir    string
	logger *slog.Logger
}

func NewSocketNotifier(host string, port int, dir string, logger *slog.Logger) *SocketNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SocketNotifier{
		addr:   net.JoinHostPort(host, strconv.Itoa(port)),
		dir:    dir,
		logger: logger,
	}
}

func (s *SocketNotifier) Send(ctx context.Context, n Notification) error {
	path, err := s.writeConfig(n.withDefaults())
	if err != nil {
		return err
	}

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("connecting to notification daemon at %s: %w", s.addr, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(dialTimeout))
	if _, err := conn.Write([]byte(path + "\n")); err != nil {
		return fmt.Errorf("sending notification path: %w", err)
	}
	s.logger.DebugContext(ctx, "notification sent", "title", n.Title, "file", path)
	return nil
}

// writeConfig stores n under a unique name and returns the absolute path.
func (s *SocketNotifier) writeConfig(n Notification) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating notification directory: %w", err)
	}
	f, err := os.CreateTemp(s.dir, configPattern)
	if err != nil {
		return "", fmt.Errorf("creating notification file: %w", err)
	}
	if _, err := f.WriteString(RenderConfig(n)); err != nil {
		f.Close()
		return "", fmt.Errorf("writing notification file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing notification file: %w", err)
	}
	return filepath.Abs(f.Name())
}

// RenderConfig produces the daemon's INI format. The message is written
// as-is; the daemon reads multi-line messages up to the next key.
func RenderConfig(n Notification) string {
	n = n.withDefaults()
	var b strings.Builder
	b.WriteString("[notification]\n")
	b.WriteString("title=" + n.Title + "\n")
	b.WriteString("message=" + n.Message + "\n")
	b.WriteString("urgency=" + string(n.Urgency) + "\n")
	b.WriteString("timeout=" + strconv.FormatInt(n.Timeout.Milliseconds(), 10) + "\n")
	if n.Icon != "" {
		b.WriteString("icon=" + n.Icon + "\n")
	}
	return b.String()
}

// Cleanup removes notification files older than maxAge and returns how many
// were deleted. A missing directory is not an error.
func (s *SocketNotifier) Cleanup(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.conf"))
	if err != nil {
		return 0, fmt.Errorf("listing notification files: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				s.logger.Warn("removing old notification file", "file", path, "error", err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
