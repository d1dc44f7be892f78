// Package notifier delivers reminder text to the murojaah tray companion.
//
// The tray writes a lockfile of the form "port|pid|secret" into its config
// directory while it is running; notifications are POSTed as JSON to
// 127.0.0.1:port with the secret in the X-Murojaah-Secret header.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/logger"
)

const SecretHeader = "X-Murojaah-Secret"

var ErrTrayNotRunning = errors.New("murojaah-tray is not running")

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Sender is implemented by anything that can show a notification.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

type Payload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// Endpoint is a validated tray listener.
type Endpoint struct {
	Port   int
	Secret string
}

func (e Endpoint) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", e.Port)
}

type Notifier struct {
	client  *http.Client
	retries int
	delay   time.Duration
}

func New() *Notifier {
	return &Notifier{
		client:  &http.Client{Timeout: 5 * time.Second},
		retries: constants.NotifyMaxRetries,
		delay:   constants.NotifyRetryDelay,
	}
}

// Notify locates the tray and sends text to it, retrying transient
// delivery failures.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	ep, err := Discover()
	if err != nil {
		return err
	}

	payload := Payload{Text: text, DurationMs: constants.NotificationDurationMs}

	var lastErr error
	for attempt := 1; attempt <= n.retries; attempt++ {
		if lastErr = n.send(ctx, ep, payload); lastErr == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.delay):
		}
	}
	return fmt.Errorf("failed to send notification after %d attempts: %w", n.retries, lastErr)
}

// TrayConfigDir returns the directory holding the tray lockfile. The tray
// may relocate it through "lockfile_dir" in its settings.json.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	dir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}

	var store struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring malformed tray settings", "error", err)
		return dir, nil
	}
	if store.Settings.LockfileDir != "" {
		return store.Settings.LockfileDir, nil
	}
	return dir, nil
}

// Discover returns the endpoint of the running tray.
func Discover() (Endpoint, error) {
	dir, err := TrayConfigDir()
	if err != nil {
		return Endpoint{}, err
	}
	return readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
}

func readLockfile(path string) (Endpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Endpoint{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return Endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Endpoint{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return Endpoint{}, errors.New("secret in lockfile is empty")
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return Endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayExecutablePrefix) {
		return Endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, proc.Executable())
	}

	return Endpoint{Port: port, Secret: secret}, nil
}

func (n *Notifier) send(ctx context.Context, ep Endpoint, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, ep.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
