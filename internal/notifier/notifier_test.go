package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/carbonquest/carbonquest/internal/constants"
	"github.com/carbonquest/carbonquest/internal/models"
)

type fakeProcess struct{ pid int }

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return "carbonquest-tray" }

func setupTray(t *testing.T, handler http.Handler) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0700); err != nil {
		t.Fatal(err)
	}
	lockfile := fmt.Sprintf("%s|1234|test-secret", u.Port())
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifyLockfileName), []byte(lockfile), 0600); err != nil {
		t.Fatal(err)
	}

	origConfigDir := userConfigDirFunc
	origFindProcess := findProcessFunc
	userConfigDirFunc = func() (string, error) { return configDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) { return fakeProcess{pid: pid}, nil }
	t.Cleanup(func() {
		userConfigDirFunc = origConfigDir
		findProcessFunc = origFindProcess
	})
}

func TestNotifyUnlock_PostsToTray(t *testing.T) {
	var got webhookPayload
	var auth string
	setupTray(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	ev := models.AchievementEvent{
		Achievement: models.Achievement{Title: "Cycling Champion"},
		CompletedAt: time.Now(),
		Level:       1,
		CO2Impact:   -1.05,
	}
	if err := New().NotifyUnlock(ev); err != nil {
		t.Fatalf("NotifyUnlock: %v", err)
	}

	want := "Cycling Champion reached level 1! 1.1 kg CO₂ saved"
	if got.Text != want {
		t.Errorf("payload text = %q, want %q", got.Text, want)
	}
	if auth != "Bearer test-secret" {
		t.Errorf("Authorization = %q, want the lockfile secret", auth)
	}
}

func TestNotify_TrayRejectsSecret(t *testing.T) {
	setupTray(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if err := New().Notify("hello"); err == nil {
		t.Error("expected an error for a non-200 tray response")
	}
}

func TestNotify_NoLockfile(t *testing.T) {
	configDir := t.TempDir()
	orig := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return configDir, nil }
	t.Cleanup(func() { userConfigDirFunc = orig })

	if err := New().Notify("hello"); err == nil {
		t.Error("expected an error when the tray app is not running")
	}
}

func TestReadLockfile_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few fields", "8080|1234"},
		{"bad port", "notaport|1234|secret"},
		{"port out of range", "70000|1234|secret"},
		{"bad pid", "8080|abc|secret"},
		{"empty secret", "8080|1234| "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), constants.NotifyLockfileName)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, _, err := readLockfile(path); err == nil {
				t.Error("expected a lockfile validation error")
			}
		})
	}
}

func TestReadLockfile_DeadProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.NotifyLockfileName)
	if err := os.WriteFile(path, []byte("8080|99999|secret"), 0600); err != nil {
		t.Fatal(err)
	}

	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	t.Cleanup(func() { findProcessFunc = orig })

	if _, _, err := readLockfile(path); err == nil {
		t.Error("expected an error when the tray process is gone")
	}
}
