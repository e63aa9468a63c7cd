// Package chat turns a user message plus stored context into an assistant
// reply, either through the upstream model or the deterministic generator.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/moodroute/moodroute/internal/profile"
	"github.com/moodroute/moodroute/plugin/cityknow"
	"github.com/moodroute/moodroute/plugin/mood"
	"github.com/moodroute/moodroute/plugin/routegen"
	"github.com/moodroute/moodroute/server/ai"
	chaterrors "github.com/moodroute/moodroute/server/internal/errors"
	"github.com/moodroute/moodroute/store"
)

// Reply modes reported back to the client.
const (
	ModeOpenAI       = "openai"
	ModeMock         = "mock"
	ModeMockFallback = "mock-fallback"
)

// HistoryTurn is one prior conversation turn fed to the generator.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries everything needed to generate one assistant reply.
type Request struct {
	Message     string
	History     []HistoryTurn
	CityRecord  *cityknow.CityRecord
	UserProfile *store.UserProfile
	Attachments []ai.Attachment
}

// Result is the generated reply and the mode that produced it.
type Result struct {
	Mode  string
	Reply string
}

// Service generates assistant replies.
type Service struct {
	profile   *profile.Profile
	provider  *ai.Provider
	converter *ai.ImageConverter
}

// NewService creates a chat service. The provider may be unconfigured, in
// which case every reply comes from the deterministic generator.
func NewService(serverProfile *profile.Profile, provider *ai.Provider, converter *ai.ImageConverter) *Service {
	return &Service{
		profile:   serverProfile,
		provider:  provider,
		converter: converter,
	}
}

// CreateAssistantReply produces the reply for one user message. When the
// upstream model is not configured the deterministic generator answers; when
// the upstream call fails the generator answers as a fallback so the chat
// never breaks.
func (s *Service) CreateAssistantReply(ctx context.Context, req *Request) *Result {
	if !s.provider.IsConfigured() {
		return &Result{Mode: ModeMock, Reply: s.buildMockReply(req)}
	}

	reply, err := s.fetchModelReply(ctx, req)
	if err != nil {
		slog.Error("upstream model failed, falling back to deterministic reply",
			"code", chaterrors.GetCodeFromError(err, chaterrors.ErrCodeModelUnavailable),
			"error", err)
		return &Result{Mode: ModeMockFallback, Reply: s.buildMockReply(req)}
	}
	return &Result{Mode: ModeOpenAI, Reply: reply}
}

func (s *Service) buildMockReply(req *Request) string {
	defaultCity := ""
	if req.UserProfile != nil {
		defaultCity = strings.TrimSpace(req.UserProfile.DefaultCity)
	}
	return routegen.BuildMockReply(routegen.Input{
		Message:       req.Message,
		City:          req.CityRecord,
		DefaultCity:   defaultCity,
		HasAttachment: len(req.Attachments) > 0,
	})
}

func (s *Service) fetchModelReply(ctx context.Context, req *Request) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: ai.SystemPrompt},
		{Role: openai.ChatMessageRoleDeveloper, Content: ai.DeveloperPrompt},
	}
	if cityPrompt := ai.FormatCityGrounding(req.CityRecord); cityPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleDeveloper, Content: cityPrompt,
		})
	}
	if profilePrompt := ai.FormatProfileContext(req.UserProfile); profilePrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleDeveloper, Content: profilePrompt,
		})
	}
	for _, turn := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	userMessage := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	imageParts := s.converter.BuildImageParts(ctx, req.Attachments)
	if len(imageParts) > 0 {
		userMessage.MultiContent = append([]openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Message},
		}, imageParts...)
	} else {
		userMessage.Content = req.Message
	}
	messages = append(messages, userMessage)

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// SanitizeHistory keeps only user and assistant turns with non-empty
// content, truncates each turn to maxLength characters, and keeps the most
// recent window of turns.
func SanitizeHistory(turns []HistoryTurn, maxLength int) []HistoryTurn {
	clean := []HistoryTurn{}
	for _, turn := range turns {
		if turn.Role != string(store.MessageRoleUser) && turn.Role != string(store.MessageRoleAssistant) {
			continue
		}
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		content = truncateRunes(content, maxLength)
		clean = append(clean, HistoryTurn{Role: turn.Role, Content: content})
	}
	if len(clean) > profile.ContextMessages {
		clean = clean[len(clean)-profile.ContextMessages:]
	}
	return clean
}

// truncateRunes caps a string at limit characters without splitting a rune.
func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}

// ResolveCityRecord resolves city knowledge for a message. The message wins;
// otherwise the most recent user turn mentioning a city is used; the saved
// default city is the last resort.
func ResolveCityRecord(message string, history []HistoryTurn, userProfile *store.UserProfile) *cityknow.CityRecord {
	candidate := mood.ExtractCity(message)
	if candidate == "" {
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Role != string(store.MessageRoleUser) {
				continue
			}
			if extracted := mood.ExtractCity(history[i].Content); extracted != "" {
				candidate = extracted
				break
			}
		}
	}
	if candidate != "" {
		if record := cityknow.Find(candidate); record != nil {
			return record
		}
	}
	// Unknown or missing city falls back to the saved default.
	if userProfile != nil && strings.TrimSpace(userProfile.DefaultCity) != "" {
		return cityknow.Find(userProfile.DefaultCity)
	}
	return nil
}
