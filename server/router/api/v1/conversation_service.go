package v1

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/moodroute/moodroute/store"
)

const (
	defaultConversationTitle = "New MoodRoute Chat"
	maxConversationTitle     = 80
	compactTitleLength       = 56
	previewLength            = 160
)

type conversationPayload struct {
	ID          int32  `json:"id"`
	UID         string `json:"uid"`
	Title       string `json:"title"`
	CreatedTs   int64  `json:"created_at"`
	UpdatedTs   int64  `json:"updated_at"`
	LastMessage string `json:"last_message,omitempty"`
}

func convertConversation(conversation *store.Conversation) *conversationPayload {
	return &conversationPayload{
		ID:          conversation.ID,
		UID:         conversation.UID,
		Title:       conversation.Title,
		CreatedTs:   conversation.CreatedTs,
		UpdatedTs:   conversation.UpdatedTs,
		LastMessage: shortPreview(conversation.LastMessage),
	}
}

type messagePayload struct {
	ID             int32  `json:"id"`
	UID            string `json:"uid"`
	ConversationID int32  `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	CreatedTs      int64  `json:"created_at"`
}

func convertMessage(message *store.Message) *messagePayload {
	return &messagePayload{
		ID:             message.ID,
		UID:            message.UID,
		ConversationID: message.ConversationID,
		Role:           string(message.Role),
		Content:        message.Content,
		CreatedTs:      message.CreatedTs,
	}
}

func (s *APIV1Service) ListConversations(c echo.Context) error {
	user := userFromContext(c)
	conversations, err := s.Store.ListConversations(c.Request().Context(), &store.FindConversation{
		UserID: &user.ID,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch conversations.")
	}

	payloads := make([]*conversationPayload, 0, len(conversations))
	for _, conversation := range conversations {
		payloads = append(payloads, convertConversation(conversation))
	}
	return c.JSON(http.StatusOK, map[string]any{"conversations": payloads})
}

type createConversationRequest struct {
	Title string `json:"title"`
}

func (s *APIV1Service) CreateConversation(c echo.Context) error {
	user := userFromContext(c)
	request := &createConversationRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	title := truncate(normalizeText(request.Title), maxConversationTitle)
	if title == "" {
		title = defaultConversationTitle
	}

	conversation, err := s.Store.CreateConversation(c.Request().Context(), &store.Conversation{
		UID:    shortuuid.New(),
		UserID: user.ID,
		Title:  title,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to create conversation.")
	}
	return c.JSON(http.StatusCreated, map[string]any{"conversation": convertConversation(conversation)})
}

func (s *APIV1Service) ListMessages(c echo.Context) error {
	user := userFromContext(c)
	conversationID, ok := parseConversationID(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid conversation id.")
	}

	conversation, errResp := s.getConversationOr404(c, conversationID, user.ID)
	if conversation == nil {
		return errResp
	}

	messages, err := s.Store.ListMessages(c.Request().Context(), &store.FindMessage{
		ConversationID: &conversationID,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch messages.")
	}

	payloads := make([]*messagePayload, 0, len(messages))
	for _, message := range messages {
		payloads = append(payloads, convertMessage(message))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"conversation": convertConversation(conversation),
		"messages":     payloads,
	})
}

type saveMessagePairRequest struct {
	UserMessage      string `json:"userMessage"`
	AssistantMessage string `json:"assistantMessage"`
}

func (s *APIV1Service) SaveMessagePair(c echo.Context) error {
	user := userFromContext(c)
	conversationID, ok := parseConversationID(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid conversation id.")
	}

	request := &saveMessagePairRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	userMessage := normalizeText(request.UserMessage)
	assistantMessage := normalizeText(request.AssistantMessage)
	if userMessage == "" || assistantMessage == "" {
		return errorJSON(c, http.StatusBadRequest, "Both userMessage and assistantMessage are required.")
	}
	if utf8.RuneCountInString(userMessage) > s.Profile.MaxMessageLength || utf8.RuneCountInString(assistantMessage) > s.Profile.MaxMessageLength*3 {
		return errorJSON(c, http.StatusBadRequest, "Message too long.")
	}

	ctx := c.Request().Context()
	conversation, errResp := s.getConversationOr404(c, conversationID, user.ID)
	if conversation == nil {
		return errResp
	}

	existingCount, err := s.Store.CountMessages(ctx, conversationID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to save messages.")
	}

	savedUser, err := s.Store.CreateMessage(ctx, &store.Message{
		UID:            shortuuid.New(),
		ConversationID: conversationID,
		Role:           store.MessageRoleUser,
		Content:        userMessage,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to save messages.")
	}
	savedAssistant, err := s.Store.CreateMessage(ctx, &store.Message{
		UID:            shortuuid.New(),
		ConversationID: conversationID,
		Role:           store.MessageRoleAssistant,
		Content:        assistantMessage,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to save messages.")
	}

	now := time.Now().Unix()
	update := &store.UpdateConversation{ID: conversationID, UpdatedTs: &now}
	if existingCount == 0 {
		title := makeConversationTitle(userMessage)
		update.Title = &title
	}
	if _, err := s.Store.UpdateConversation(ctx, update); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to save messages.")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"saved": []*messagePayload{convertMessage(savedUser), convertMessage(savedAssistant)},
	})
}

func (s *APIV1Service) ClearConversation(c echo.Context) error {
	user := userFromContext(c)
	conversationID, ok := parseConversationID(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid conversation id.")
	}

	conversation, errResp := s.getConversationOr404(c, conversationID, user.ID)
	if conversation == nil {
		return errResp
	}

	ctx := c.Request().Context()
	if err := s.Store.DeleteMessages(ctx, &store.DeleteMessage{ConversationID: &conversationID}); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to clear conversation.")
	}
	now := time.Now().Unix()
	if _, err := s.Store.UpdateConversation(ctx, &store.UpdateConversation{ID: conversationID, UpdatedTs: &now}); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to clear conversation.")
	}
	return c.JSON(http.StatusOK, map[string]bool{"cleared": true})
}

func (s *APIV1Service) DeleteConversation(c echo.Context) error {
	user := userFromContext(c)
	conversationID, ok := parseConversationID(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid conversation id.")
	}

	deleted, err := s.Store.DeleteConversation(c.Request().Context(), &store.DeleteConversation{
		ID:     conversationID,
		UserID: user.ID,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to delete conversation.")
	}
	if deleted == 0 {
		return errorJSON(c, http.StatusNotFound, "Conversation not found.")
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// makeConversationTitle compacts the first user message into a short title.
func makeConversationTitle(text string) string {
	compact := strings.Join(strings.Fields(text), " ")
	if compact == "" {
		return defaultConversationTitle
	}
	if utf8.RuneCountInString(compact) > compactTitleLength {
		return truncate(compact, compactTitleLength) + "..."
	}
	return compact
}

// shortPreview compacts a message preview for conversation lists.
func shortPreview(text string) string {
	compact := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(compact) > previewLength {
		return truncate(compact, previewLength) + "..."
	}
	return compact
}
