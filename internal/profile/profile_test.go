package profile

import (
	"os"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	clearEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"OpenAIAPIKey empty by default", "", profile.OpenAIAPIKey},
		{"OpenAIBaseURL default", "https://api.openai.com/v1", profile.OpenAIBaseURL},
		{"OpenAIModel default", "gpt-4.1-mini", profile.OpenAIModel},
		{"GithubClientID empty by default", "", profile.GithubClientID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}
}

func TestFromEnvOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "MOODROUTE_OPENAI_API_KEY",
			envVar:   "MOODROUTE_OPENAI_API_KEY",
			envValue: "test-key-123",
			field:    func(p *Profile) string { return p.OpenAIAPIKey },
			expected: "test-key-123",
		},
		{
			name:     "MOODROUTE_OPENAI_API_KEY is trimmed",
			envVar:   "MOODROUTE_OPENAI_API_KEY",
			envValue: "  test-key-123  ",
			field:    func(p *Profile) string { return p.OpenAIAPIKey },
			expected: "test-key-123",
		},
		{
			name:     "MOODROUTE_OPENAI_BASE_URL",
			envVar:   "MOODROUTE_OPENAI_BASE_URL",
			envValue: "https://custom.openai.proxy/v1",
			field:    func(p *Profile) string { return p.OpenAIBaseURL },
			expected: "https://custom.openai.proxy/v1",
		},
		{
			name:     "MOODROUTE_OPENAI_MODEL",
			envVar:   "MOODROUTE_OPENAI_MODEL",
			envValue: "gpt-4o",
			field:    func(p *Profile) string { return p.OpenAIModel },
			expected: "gpt-4o",
		},
		{
			name:     "MOODROUTE_GITHUB_CLIENT_ID",
			envVar:   "MOODROUTE_GITHUB_CLIENT_ID",
			envValue: "client-id",
			field:    func(p *Profile) string { return p.GithubClientID },
			expected: "client-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			os.Setenv(tt.envVar, tt.envValue)
			defer clearEnvVars()

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	profile := &Profile{Mode: "weird", Port: 3000, Data: dir, Driver: "sqlite"}
	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}

	if profile.Mode != "dev" {
		t.Errorf("Mode: expected %q, got %q", "dev", profile.Mode)
	}
	if profile.SessionTTLDays != 14 {
		t.Errorf("SessionTTLDays: expected 14, got %d", profile.SessionTTLDays)
	}
	if profile.RateLimitPerMinute != 45 {
		t.Errorf("RateLimitPerMinute: expected 45, got %d", profile.RateLimitPerMinute)
	}
	if profile.MaxMessageLength != 1200 {
		t.Errorf("MaxMessageLength: expected 1200, got %d", profile.MaxMessageLength)
	}
	if profile.MaxImageBytes != 4*1024*1024 {
		t.Errorf("MaxImageBytes: expected 4194304, got %d", profile.MaxImageBytes)
	}
	if profile.GithubCallbackURL != "http://localhost:3000/api/auth/github/callback" {
		t.Errorf("GithubCallbackURL: got %q", profile.GithubCallbackURL)
	}
	if profile.DSN == "" {
		t.Error("DSN: expected a default sqlite path, got empty string")
	}
}

func TestIsLiveModelConfigured(t *testing.T) {
	profile := &Profile{}
	if profile.IsLiveModelConfigured() {
		t.Error("expected live model to be unconfigured without an API key")
	}
	profile.OpenAIAPIKey = "key"
	if !profile.IsLiveModelConfigured() {
		t.Error("expected live model to be configured with an API key")
	}
}

func TestIsGithubConfigured(t *testing.T) {
	profile := &Profile{GithubClientID: "id"}
	if profile.IsGithubConfigured() {
		t.Error("expected GitHub to be unconfigured without a secret")
	}
	profile.GithubClientSecret = "secret"
	if !profile.IsGithubConfigured() {
		t.Error("expected GitHub to be configured with id and secret")
	}
}

func clearEnvVars() {
	envVars := []string{
		"MOODROUTE_OPENAI_API_KEY",
		"MOODROUTE_OPENAI_BASE_URL",
		"MOODROUTE_OPENAI_MODEL",
		"MOODROUTE_GITHUB_CLIENT_ID",
		"MOODROUTE_GITHUB_CLIENT_SECRET",
		"MOODROUTE_GITHUB_CALLBACK_URL",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}
