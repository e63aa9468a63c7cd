package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/moodroute/moodroute/internal/profile"
	"github.com/moodroute/moodroute/server/ai"
	"github.com/moodroute/moodroute/server/internal/observability"
	"github.com/moodroute/moodroute/server/service/chat"
	"github.com/moodroute/moodroute/store"
)

type chatRequest struct {
	Message        string             `json:"message"`
	ConversationID *int32             `json:"conversationId"`
	History        []chat.HistoryTurn `json:"history"`
	Attachments    []ai.Attachment    `json:"attachments"`
}

type chatResponse struct {
	Reply       string `json:"reply"`
	Mode        string `json:"mode"`
	Personality string `json:"personality"`
}

func (s *APIV1Service) Chat(c echo.Context) error {
	user := userFromContext(c)
	request := &chatRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	message := normalizeText(request.Message)
	if message == "" {
		return errorJSON(c, http.StatusBadRequest, "Message is required.")
	}
	if utf8.RuneCountInString(message) > s.Profile.MaxMessageLength {
		return errorJSON(c, http.StatusBadRequest,
			fmt.Sprintf("Message is too long (max %d chars).", s.Profile.MaxMessageLength))
	}

	reqCtx := observability.NewRequestContext(slog.Default(), "/api/chat", user.ID)
	ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)

	var history []chat.HistoryTurn
	if request.ConversationID != nil {
		conversationID := *request.ConversationID
		if conversationID <= 0 {
			return errorJSON(c, http.StatusBadRequest, "Invalid conversation id.")
		}
		conversation, errResp := s.getConversationOr404(c, conversationID, user.ID)
		if conversation == nil {
			return errResp
		}

		limit := profile.ContextMessages
		recent, err := s.Store.ListMessages(ctx, &store.FindMessage{
			ConversationID: &conversationID,
			Limit:          &limit,
			Descending:     true,
		})
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, "Chat generation failed.")
		}
		// Restore chronological order.
		for i := len(recent) - 1; i >= 0; i-- {
			history = append(history, chat.HistoryTurn{
				Role:    string(recent[i].Role),
				Content: recent[i].Content,
			})
		}
	} else {
		history = request.History
	}
	cleanHistory := chat.SanitizeHistory(history, s.Profile.MaxMessageLength)

	userProfile, err := s.ensureUserProfile(c, user.ID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Chat generation failed.")
	}

	cityRecord := chat.ResolveCityRecord(message, cleanHistory, userProfile)
	result := s.ChatService.CreateAssistantReply(ctx, &chat.Request{
		Message:     message,
		History:     cleanHistory,
		CityRecord:  cityRecord,
		UserProfile: userProfile,
		Attachments: normalizeChatAttachments(request.Attachments),
	})

	reply := chat.StripRawURLs(result.Reply)
	suggestions := chat.BuildMapsSuggestions(message, reply, cityRecord, userProfile)
	reply = chat.AppendMapsLinks(reply, suggestions, s.Profile.MaxMessageLength)

	observability.GlobalMetrics().RecordReply(result.Mode, reqCtx.Duration())
	reqCtx.Info("chat reply generated",
		slog.String(observability.LogFieldMode, result.Mode),
		slog.Int(observability.LogFieldMessageLen, len(message)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)

	return c.JSON(http.StatusOK, &chatResponse{
		Reply:       reply,
		Mode:        result.Mode,
		Personality: ai.BotPersonality.Name,
	})
}

// normalizeChatAttachments keeps only safe upload URLs, capped at the
// per-message attachment limit.
func normalizeChatAttachments(attachments []ai.Attachment) []ai.Attachment {
	if len(attachments) > ai.MaxChatAttachments {
		attachments = attachments[:ai.MaxChatAttachments]
	}
	cleaned := make([]ai.Attachment, 0, len(attachments))
	for _, attachment := range attachments {
		url := normalizeText(attachment.URL)
		if !ai.IsSafeUploadURL(url) {
			continue
		}
		cleaned = append(cleaned, ai.Attachment{
			URL:      url,
			FileName: sanitizeUploadFileName(attachment.FileName),
		})
	}
	return cleaned
}
