// Package v1 implements the JSON API consumed by the web client.
package v1

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/moodroute/moodroute/internal/profile"
	"github.com/moodroute/moodroute/server/ai"
	"github.com/moodroute/moodroute/server/auth"
	"github.com/moodroute/moodroute/server/middleware"
	"github.com/moodroute/moodroute/server/service/chat"
	"github.com/moodroute/moodroute/store"
)

type APIV1Service struct {
	Profile      *profile.Profile
	Store        *store.Store
	ChatService  *chat.Service
	GithubClient *auth.GithubClient
	StateStore   *auth.StateStore

	uploadsDir string
}

func NewAPIV1Service(serverProfile *profile.Profile, storeInstance *store.Store) (*APIV1Service, error) {
	provider, err := ai.NewProvider(ai.ConfigFromProfile(serverProfile))
	if err != nil {
		return nil, err
	}

	uploadsDir := filepath.Join(serverProfile.Data, "uploads")
	converter := ai.NewImageConverter(uploadsDir, int64(serverProfile.MaxImageBytes))

	service := &APIV1Service{
		Profile:     serverProfile,
		Store:       storeInstance,
		ChatService: chat.NewService(serverProfile, provider, converter),
		StateStore:  auth.NewStateStore(),
		uploadsDir:  uploadsDir,
	}
	if serverProfile.IsGithubConfigured() {
		service.GithubClient = auth.NewGithubClient(serverProfile)
	}
	return service, nil
}

// RegisterRoutes attaches all API routes to the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	rateLimiter := middleware.NewRateLimiter(s.Profile.RateLimitPerMinute)

	apiGroup := echoServer.Group("/api",
		middleware.RateLimitMiddleware(rateLimiter),
		s.attachUserMiddleware,
	)

	apiGroup.GET("/meta", s.GetMeta)

	apiGroup.POST("/auth/register", s.Register)
	apiGroup.POST("/auth/login", s.Login)
	apiGroup.POST("/auth/logout", s.Logout)
	apiGroup.GET("/auth/me", s.GetCurrentUser)
	apiGroup.GET("/auth/github/start", s.GithubStart)
	apiGroup.GET("/auth/github/callback", s.GithubCallback)

	apiGroup.GET("/profile", s.GetProfile, s.requireAuth)
	apiGroup.PUT("/profile", s.UpdateProfile, s.requireAuth)

	apiGroup.POST("/uploads/image", s.UploadImage, s.requireAuth)

	apiGroup.GET("/conversations", s.ListConversations, s.requireAuth)
	apiGroup.POST("/conversations", s.CreateConversation, s.requireAuth)
	apiGroup.GET("/conversations/:id/messages", s.ListMessages, s.requireAuth)
	apiGroup.POST("/conversations/:id/messages", s.SaveMessagePair, s.requireAuth)
	apiGroup.POST("/conversations/:id/clear", s.ClearConversation, s.requireAuth)
	apiGroup.DELETE("/conversations/:id", s.DeleteConversation, s.requireAuth)

	apiGroup.POST("/chat", s.Chat, s.requireAuth)

	// Unknown API routes get a JSON 404 instead of the default HTML one.
	apiGroup.Any("/*", func(c echo.Context) error {
		return errorJSON(c, http.StatusNotFound, "API route not found.")
	})

	echoServer.Static("/uploads", s.uploadsDir)
}
