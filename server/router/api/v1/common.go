package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moodroute/moodroute/server/auth"
	"github.com/moodroute/moodroute/store"
)

const userContextKey = "moodroute-user"

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// attachUserMiddleware resolves the session cookie into a user, if any.
// It never fails the request; handlers needing auth use requireAuth.
func (s *APIV1Service) attachUserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(auth.SessionCookieName)
		if err == nil && cookie.Value != "" {
			user, err := auth.GetUserFromSessionToken(c.Request().Context(), s.Store, cookie.Value)
			if err == nil && user != nil {
				c.Set(userContextKey, user)
			}
		}
		return next(c)
	}
}

func (s *APIV1Service) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userFromContext(c) == nil {
			return errorJSON(c, http.StatusUnauthorized, "Authentication required.")
		}
		return next(c)
	}
}

func userFromContext(c echo.Context) *store.User {
	user, _ := c.Get(userContextKey).(*store.User)
	return user
}

// userPayload is the sanitized user shape returned by the API. The password
// hash and raw GitHub id never leave the server.
type userPayload struct {
	ID              int32  `json:"id"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Provider        string `json:"provider"`
	GithubAvatarURL string `json:"github_avatar_url"`
	CreatedTs       int64  `json:"created_at"`
}

func convertUser(user *store.User) *userPayload {
	if user == nil {
		return nil
	}
	return &userPayload{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		Provider:        user.Provider(),
		GithubAvatarURL: user.GithubAvatarURL,
		CreatedTs:       user.CreatedTs,
	}
}

func normalizeText(value string) string {
	return strings.TrimSpace(value)
}

// parseConversationID accepts positive integer ids only.
func parseConversationID(raw string) (int32, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// getConversationOr404 loads a conversation owned by the user, or writes a
// JSON 404 and returns nil.
func (s *APIV1Service) getConversationOr404(c echo.Context, conversationID int32, userID int32) (*store.Conversation, error) {
	conversation, err := s.Store.GetConversation(c.Request().Context(), &store.FindConversation{
		ID:     &conversationID,
		UserID: &userID,
	})
	if err != nil {
		return nil, errorJSON(c, http.StatusInternalServerError, "Failed to fetch conversation.")
	}
	if conversation == nil {
		return nil, errorJSON(c, http.StatusNotFound, "Conversation not found.")
	}
	return conversation, nil
}
