package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/moodroute/moodroute/internal/profile"
)

// stateTTL bounds how long an OAuth round trip may take.
const stateTTL = 10 * time.Minute

// stateSweepInterval is how often abandoned states are pruned.
const stateSweepInterval = time.Minute

// OAuthState is the per-login state recorded before redirecting to GitHub.
type OAuthState struct {
	CreatedAt time.Time
	NextPath  string
}

// StateStore holds pending OAuth states. Each state is single-use and
// expires after ten minutes.
type StateStore struct {
	mu     sync.Mutex
	states map[string]OAuthState

	// now is replaceable in tests.
	now func() time.Time
}

// NewStateStore creates an empty state store. Abandoned states are pruned
// every minute so a user who never returns from GitHub leaves nothing behind.
func NewStateStore() *StateStore {
	s := &StateStore{
		states: map[string]OAuthState{},
		now:    time.Now,
	}
	go s.sweepLoop()
	return s
}

// Issue records a new state for nextPath and returns its key.
func (s *StateStore) Issue(nextPath string) (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}
	state := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = OAuthState{CreatedAt: s.now(), NextPath: nextPath}
	return state, nil
}

// Consume removes and returns the stored state. Unknown and expired states
// return nil; either way the state cannot be replayed.
func (s *StateStore) Consume(state string) *OAuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.states[state]
	if !ok {
		return nil
	}
	delete(s.states, state)
	if s.now().Sub(stored.CreatedAt) > stateTTL {
		return nil
	}
	return &stored
}

func (s *StateStore) sweepLoop() {
	ticker := time.NewTicker(stateSweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.sweepExpired()
	}
}

// sweepExpired drops every state past its TTL and returns how many went.
func (s *StateStore) sweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, stored := range s.states {
		if s.now().Sub(stored.CreatedAt) > stateTTL {
			delete(s.states, key)
			removed++
		}
	}
	return removed
}

// NormalizeNextPath restricts post-login redirects to local page paths.
func NormalizeNextPath(rawNextPath string) string {
	value := strings.TrimSpace(rawNextPath)
	if !strings.HasPrefix(value, "/") || strings.HasPrefix(value, "//") {
		return "/chat"
	}
	if strings.HasPrefix(value, "/api/") {
		return "/chat"
	}
	return value
}

// GithubUser is the subset of the GitHub profile the login flow needs.
type GithubUser struct {
	ID        string
	Login     string
	Email     string
	AvatarURL string
}

// GithubClient drives the GitHub OAuth code exchange and profile fetch.
type GithubClient struct {
	config *oauth2.Config

	// apiBaseURL is replaceable in tests.
	apiBaseURL string
}

// NewGithubClient builds a client from the server profile.
func NewGithubClient(p *profile.Profile) *GithubClient {
	return &GithubClient{
		config: &oauth2.Config{
			ClientID:     p.GithubClientID,
			ClientSecret: p.GithubClientSecret,
			RedirectURL:  p.GithubCallbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		apiBaseURL: "https://api.github.com",
	}
}

// AuthCodeURL returns the GitHub authorize URL for state.
func (c *GithubClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// ExchangeUser trades the callback code for the GitHub user behind it. When
// the public profile hides the email, the private email list is consulted,
// preferring primary verified addresses.
func (c *GithubClient) ExchangeUser(ctx context.Context, code string) (*GithubUser, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange oauth code")
	}
	client := c.config.Client(ctx, token)

	var payload struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.getJSON(client, "/user", &payload); err != nil {
		return nil, errors.Wrap(err, "failed to fetch github user")
	}
	if payload.ID == 0 || payload.Login == "" {
		return nil, errors.New("github user data is incomplete")
	}

	user := &GithubUser{
		ID:        strconv.FormatInt(payload.ID, 10),
		Login:     strings.TrimSpace(payload.Login),
		Email:     NormalizeEmail(payload.Email),
		AvatarURL: strings.TrimSpace(payload.AvatarURL),
	}
	if user.Email == "" {
		user.Email = c.lookupEmail(client)
	}
	return user, nil
}

func (c *GithubClient) lookupEmail(client *http.Client) string {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := c.getJSON(client, "/user/emails", &emails); err != nil || len(emails) == 0 {
		return ""
	}

	for _, email := range emails {
		if email.Primary && email.Verified {
			return NormalizeEmail(email.Email)
		}
	}
	for _, email := range emails {
		if email.Verified {
			return NormalizeEmail(email.Email)
		}
	}
	return NormalizeEmail(emails[0].Email)
}

func (c *GithubClient) getJSON(client *http.Client, path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "MoodRoute-AI")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 180))
		return errors.Errorf("github api %s returned %d: %s", path, resp.StatusCode, string(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
