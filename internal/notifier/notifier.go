// Package notifier delivers achievement-unlock toasts through the desktop
// tray companion. The tray app writes a lockfile with its webhook port, PID,
// and shared secret; the PID is verified to still be alive before posting.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type webhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// NotifyUnlock posts a celebratory toast for an achievement level-up.
func (n *Notifier) NotifyUnlock(ev models.AchievementEvent) error {
	text := fmt.Sprintf("%s reached level %d! %.1f kg CO₂ saved",
		ev.Achievement.Title, ev.Level, -ev.CO2Impact)
	return n.Notify(text)
}

func (n *Notifier) Notify(text string) error {
	configDir, err := trayConfigDir()
	if err != nil {
		return err
	}
	port, secret, err := readLockfile(filepath.Join(configDir, constants.NotifyLockfileName))
	if err != nil {
		return err
	}
	return post(port, secret, webhookPayload{Text: text, DurationMs: constants.NotificationDurationMs})
}

func trayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.TrayAppIdentifier), nil
}

func readLockfile(path string) (string, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.New("carbonquest tray app is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port, pidStr, secret := parts[0], parts[1], parts[2]
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", "", errors.New("invalid port in lockfile")
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return "", "", errors.New("carbonquest tray app is not running")
	}

	return port, secret, nil
}

func post(port, secret string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://127.0.0.1:%s/notify", port), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach tray app: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tray app returned status %d", resp.StatusCode)
	}
	return nil
}
