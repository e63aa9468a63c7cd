package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where moodroute stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the public url of your moodroute instance
	InstanceURL string

	// Upstream model configuration
	OpenAIAPIKey  string // MOODROUTE_OPENAI_API_KEY
	OpenAIBaseURL string // MOODROUTE_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	OpenAIModel   string // MOODROUTE_OPENAI_MODEL (default: gpt-4.1-mini)

	// GitHub OAuth configuration. Both values must be set for the GitHub
	// login flow to be offered.
	GithubClientID     string // MOODROUTE_GITHUB_CLIENT_ID
	GithubClientSecret string // MOODROUTE_GITHUB_CLIENT_SECRET
	GithubCallbackURL  string // MOODROUTE_GITHUB_CALLBACK_URL

	// Request shaping
	SessionTTLDays     int // MOODROUTE_SESSION_TTL_DAYS (default: 14)
	RateLimitPerMinute int // MOODROUTE_RATE_LIMIT_MAX (default: 45)
	MaxMessageLength   int // MOODROUTE_MAX_MESSAGE_LENGTH (default: 1200)
	MaxImageBytes      int // MOODROUTE_MAX_IMAGE_UPLOAD_BYTES (default: 4 MiB)
}

// ContextMessages is the number of history turns sent to the live model.
const ContextMessages = 12

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLiveModelConfigured reports whether chat requests can reach the upstream
// model. Without a key the server answers with the deterministic generator.
func (p *Profile) IsLiveModelConfigured() bool {
	return p.OpenAIAPIKey != ""
}

// IsGithubConfigured reports whether the GitHub OAuth flow can be offered.
func (p *Profile) IsGithubConfigured() bool {
	return p.GithubClientID != "" && p.GithubClientSecret != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from MOODROUTE_* environment variables.
func (p *Profile) FromEnv() {
	p.OpenAIAPIKey = getEnvOrDefault("MOODROUTE_OPENAI_API_KEY", "")
	p.OpenAIBaseURL = getEnvOrDefault("MOODROUTE_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.OpenAIModel = getEnvOrDefault("MOODROUTE_OPENAI_MODEL", "gpt-4.1-mini")

	p.GithubClientID = getEnvOrDefault("MOODROUTE_GITHUB_CLIENT_ID", "")
	p.GithubClientSecret = getEnvOrDefault("MOODROUTE_GITHUB_CLIENT_SECRET", "")
	p.GithubCallbackURL = getEnvOrDefault("MOODROUTE_GITHUB_CALLBACK_URL", "")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.SessionTTLDays <= 0 {
		p.SessionTTLDays = 14
	}
	if p.RateLimitPerMinute <= 0 {
		p.RateLimitPerMinute = 45
	}
	if p.MaxMessageLength <= 0 {
		p.MaxMessageLength = 1200
	}
	if p.MaxImageBytes <= 0 {
		p.MaxImageBytes = 4 * 1024 * 1024
	}
	if p.GithubCallbackURL == "" {
		p.GithubCallbackURL = fmt.Sprintf("http://localhost:%d/api/auth/github/callback", p.Port)
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("moodroute_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
