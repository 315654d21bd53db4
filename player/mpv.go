package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements Player over mpv's JSON-IPC protocol. The process is started
// idle on first use and reused for every source.
type MPV struct {
	binary     string
	socketPath string
	attached   bool
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	startMu    sync.Mutex
	mu         sync.Mutex // protects socket writes
}

// NewMPV returns a player that will spawn binary (mpv from PATH when empty).
func NewMPV(binary string) *MPV {
	if binary == "" {
		binary = "mpv"
	}
	return &MPV{
		binary: binary,
		exited: make(chan struct{}),
	}
}

// AttachMPV returns a player talking to an already running mpv listening on socketPath.
// Close leaves that process running.
func AttachMPV(socketPath string) *MPV {
	return &MPV{
		socketPath: socketPath,
		attached:   true,
		exited:     make(chan struct{}),
	}
}

// Start launches the idle mpv window if it is not running yet.
func (m *MPV) Start() error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.attached || m.cmd != nil && m.IsRunning() {
		return nil
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Clipforge, randomBytes))
	}

	// Only the socket and window behaviour are forced; the user's mpv.conf is respected otherwise.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--title=%s preview", constant.Clipforge),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause",
	}

	m.cmd = exec.Command(m.binary, args...)
	m.cmd.SysProcAttr = detached()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		m.cmd = nil
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd, m.exited)

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv preview started on %s", m.socketPath)
	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// SetSource loads target paused at start, replacing whatever was shown.
// The start option is set before loadfile because mpv rejects seeks until
// the new file has finished loading.
func (m *MPV) SetSource(target string, start float64) error {
	safe, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	if err := m.Start(); err != nil {
		return err
	}

	if err := m.Set("pause", true); err != nil {
		return err
	}
	if err := m.Set("start", strconv.FormatFloat(max(start, 0), 'f', 3, 64)); err != nil {
		return err
	}
	_, err = m.sendCommand([]any{"loadfile", safe, "replace"})
	return err
}

// Play unpauses.
func (m *MPV) Play() error {
	return m.Set("pause", false)
}

// Pause pauses.
func (m *MPV) Pause() error {
	return m.Set("pause", true)
}

// Position returns time-pos. It fails while nothing is loaded.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// SetPosition performs a frame exact absolute seek.
func (m *MPV) SetPosition(seconds float64) error {
	_, err := m.sendCommand([]any{"seek", seconds, "absolute+exact"})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	if !m.attached {
		select {
		case <-m.exited:
			return false
		default:
		}
	}

	_, err := doSendCommand(m.socketPath, []any{"get_property", "pid"})
	return err == nil
}

// Close shuts down a spawned mpv and removes its socket.
func (m *MPV) Close() error {
	if m.socketPath == "" || m.attached {
		return nil
	}
	if m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set a property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "file":
			return filepath.FromSlash(u.Path), nil
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
