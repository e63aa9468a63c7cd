package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moodroute/moodroute/server/ai"
	"github.com/moodroute/moodroute/server/auth"
	"github.com/moodroute/moodroute/store"
)

type metaResponse struct {
	AppName           string         `json:"appName"`
	Personality       ai.Personality `json:"personality"`
	Model             string         `json:"model"`
	LiveAPIConfigured bool           `json:"liveApiConfigured"`
	GithubConfigured  bool           `json:"githubConfigured"`
	Authenticated     bool           `json:"authenticated"`
	User              *userPayload   `json:"user"`
}

func (s *APIV1Service) GetMeta(c echo.Context) error {
	user := userFromContext(c)
	return c.JSON(http.StatusOK, &metaResponse{
		AppName:           "MoodRoute AI",
		Personality:       ai.BotPersonality,
		Model:             s.Profile.OpenAIModel,
		LiveAPIConfigured: s.Profile.IsLiveModelConfigured(),
		GithubConfigured:  s.Profile.IsGithubConfigured(),
		Authenticated:     user != nil,
		User:              convertUser(user),
	})
}

func (s *APIV1Service) GetCurrentUser(c echo.Context) error {
	user := userFromContext(c)
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": user != nil,
		"user":          convertUser(user),
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (s *APIV1Service) Register(c echo.Context) error {
	request := &registerRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	email := auth.NormalizeEmail(request.Email)
	password := normalizeText(request.Password)
	if email == "" || password == "" {
		return errorJSON(c, http.StatusBadRequest, "email and password are required.")
	}
	if !auth.IsValidEmail(email) {
		return errorJSON(c, http.StatusBadRequest, "Invalid email format.")
	}
	if len(password) < 8 {
		return errorJSON(c, http.StatusBadRequest, "Password must be at least 8 characters.")
	}

	ctx := c.Request().Context()
	existing, err := s.Store.GetUser(ctx, &store.FindUser{Email: &email})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Registration failed.")
	}
	if existing != nil {
		return errorJSON(c, http.StatusConflict, "Email is already registered.")
	}

	usernameSource := normalizeText(request.Username)
	if usernameSource == "" {
		usernameSource = emailLocalPart(email)
	}
	username, err := auth.MakeUniqueUsername(ctx, s.Store, usernameSource)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Registration failed.")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Registration failed.")
	}

	user, err := s.Store.CreateUser(ctx, &store.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Registration failed.")
	}

	if err := s.startSession(c, user.ID); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Registration failed.")
	}
	return c.JSON(http.StatusCreated, map[string]any{"user": convertUser(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *APIV1Service) Login(c echo.Context) error {
	request := &loginRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	email := auth.NormalizeEmail(request.Email)
	password := normalizeText(request.Password)
	if email == "" || password == "" {
		return errorJSON(c, http.StatusBadRequest, "email and password are required.")
	}

	ctx := c.Request().Context()
	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &email})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Login failed.")
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return errorJSON(c, http.StatusUnauthorized, "Invalid email or password.")
	}

	if err := s.startSession(c, user.ID); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Login failed.")
	}
	return c.JSON(http.StatusOK, map[string]any{"user": convertUser(user)})
}

func (s *APIV1Service) Logout(c echo.Context) error {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := auth.DeleteSessionByToken(c.Request().Context(), s.Store, cookie.Value); err != nil {
			c.SetCookie(auth.BuildClearSessionCookie(!s.Profile.IsDev()))
			return errorJSON(c, http.StatusInternalServerError, "Logout failed.")
		}
	}
	c.SetCookie(auth.BuildClearSessionCookie(!s.Profile.IsDev()))
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// startSession creates a session row and sets the session cookie.
func (s *APIV1Service) startSession(c echo.Context, userID int32) error {
	ttl := time.Duration(s.Profile.SessionTTLDays) * 24 * time.Hour
	rawToken, expiresAt, err := auth.CreateSession(c.Request().Context(), s.Store, userID, ttl)
	if err != nil {
		return err
	}
	c.SetCookie(auth.BuildSessionCookie(rawToken, expiresAt, !s.Profile.IsDev()))
	return nil
}

func emailLocalPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
