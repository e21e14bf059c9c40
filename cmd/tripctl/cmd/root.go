package cmd

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/travelcraft/travelcraft/client"
	"github.com/travelcraft/travelcraft/core/logger"
)

var (
	serverURL string
	stateFile string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "tripctl talks to a TravelCraft API",
	Long: `A command line client for the TravelCraft API. It signs in, keeps the
session cookie between invocations and can watch session liveness.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("TRIPCTL_SERVER", "http://localhost:5000"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state", defaultStateFile(), "file holding the session cookie")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".tripctl.json"
	}
	return filepath.Join(dir, "tripctl", "session.json")
}

func newLogger() *slog.Logger {
	return logger.NewWithWriter(os.Stderr, logger.Config{Level: logLevel, Format: "text"})
}

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// newAPI builds the client and restores the saved session cookie.
func newAPI() (*client.API, error) {
	api, err := client.NewAPI(serverURL)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(stateFile)
	if errors.Is(err, os.ErrNotExist) {
		return api, nil
	}
	if err != nil {
		return nil, err
	}

	var saved []savedCookie
	if err := json.Unmarshal(raw, &saved); err != nil {
		return api, nil
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	api.SetCookies(cookies)
	return api, nil
}

// saveCookies persists the jar so the next invocation reuses the session.
func saveCookies(api *client.API) error {
	cookies := api.Cookies()
	saved := make([]savedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
	}

	raw, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(stateFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(stateFile, raw, 0o600)
}

// newManagers wires a session manager and an auth manager over api.
func newManagers(api *client.API, opts ...client.SessionOption) (*client.SessionManager, *client.AuthManager) {
	log := newLogger()
	sessions := client.NewSessionManager(api, append([]client.SessionOption{client.WithSessionLogger(log)}, opts...)...)
	return sessions, client.NewAuthManager(api, sessions, client.WithAuthLogger(log))
}
