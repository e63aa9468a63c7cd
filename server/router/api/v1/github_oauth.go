package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moodroute/moodroute/server/auth"
	"github.com/moodroute/moodroute/store"
)

func (s *APIV1Service) GithubStart(c echo.Context) error {
	if s.GithubClient == nil {
		return errorJSON(c, http.StatusInternalServerError, "GitHub OAuth is not configured on server.")
	}

	nextPath := auth.NormalizeNextPath(c.QueryParam("next"))
	state, err := s.StateStore.Issue(nextPath)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to start GitHub login.")
	}
	return c.Redirect(http.StatusFound, s.GithubClient.AuthCodeURL(state))
}

func (s *APIV1Service) GithubCallback(c echo.Context) error {
	if s.GithubClient == nil {
		return errorJSON(c, http.StatusInternalServerError, "GitHub OAuth is not configured on server.")
	}

	code := normalizeText(c.QueryParam("code"))
	storedState := s.StateStore.Consume(normalizeText(c.QueryParam("state")))
	if code == "" || storedState == nil {
		return c.String(http.StatusBadRequest, "Invalid OAuth callback state.")
	}

	ctx := c.Request().Context()
	githubUser, err := s.GithubClient.ExchangeUser(ctx, code)
	if err != nil {
		return c.String(http.StatusInternalServerError, "GitHub authentication failed.")
	}

	user, err := s.resolveGithubUser(c, githubUser)
	if err != nil {
		return c.String(http.StatusInternalServerError, "GitHub authentication failed.")
	}

	if err := s.startSession(c, user.ID); err != nil {
		return c.String(http.StatusInternalServerError, "GitHub authentication failed.")
	}
	return c.Redirect(http.StatusFound, auth.NormalizeNextPath(storedState.NextPath))
}

// resolveGithubUser finds the account for a GitHub identity, linking an
// existing email account or creating a new one as needed.
func (s *APIV1Service) resolveGithubUser(c echo.Context, githubUser *auth.GithubUser) (*store.User, error) {
	ctx := c.Request().Context()

	user, err := s.Store.GetUser(ctx, &store.FindUser{GithubID: &githubUser.ID})
	if err != nil {
		return nil, err
	}

	if user == nil && githubUser.Email != "" {
		existing, err := s.Store.GetUser(ctx, &store.FindUser{Email: &githubUser.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			now := time.Now().Unix()
			user, err = s.Store.UpdateUser(ctx, &store.UpdateUser{
				ID:              existing.ID,
				GithubID:        &githubUser.ID,
				GithubAvatarURL: &githubUser.AvatarURL,
				UpdatedTs:       &now,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	if user == nil {
		username, err := auth.MakeUniqueUsername(ctx, s.Store, githubUser.Login)
		if err != nil {
			return nil, err
		}
		email := githubUser.Email
		if email == "" {
			email = fmt.Sprintf("%s+%s@users.local", githubUser.Login, githubUser.ID)
		}
		return s.Store.CreateUser(ctx, &store.User{
			Email:           email,
			Username:        username,
			GithubID:        githubUser.ID,
			GithubAvatarURL: githubUser.AvatarURL,
		})
	}

	if githubUser.AvatarURL != "" && user.GithubAvatarURL != githubUser.AvatarURL {
		now := time.Now().Unix()
		user, err = s.Store.UpdateUser(ctx, &store.UpdateUser{
			ID:              user.ID,
			GithubAvatarURL: &githubUser.AvatarURL,
			UpdatedTs:       &now,
		})
		if err != nil {
			return nil, err
		}
	}
	return user, nil
}
