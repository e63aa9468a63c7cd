package v1

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodroute/moodroute/server/ai"
	"github.com/moodroute/moodroute/store"
)

func TestParseConversationID(t *testing.T) {
	tests := []struct {
		raw    string
		wantID int32
		wantOK bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		id, ok := parseConversationID(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.raw)
		assert.Equal(t, tt.wantID, id, "input %q", tt.raw)
	}
}

func TestConvertUser(t *testing.T) {
	assert.Nil(t, convertUser(nil))

	payload := convertUser(&store.User{
		ID:           7,
		Email:        "kari@example.com",
		Username:     "kari",
		PasswordHash: "secret-hash",
		CreatedTs:    1700000000,
	})
	require.NotNil(t, payload)
	assert.Equal(t, "local", payload.Provider)
	assert.Equal(t, "kari", payload.Username)

	github := convertUser(&store.User{ID: 8, GithubID: "12345"})
	assert.Equal(t, "github", github.Provider)
}

func TestMakeConversationTitle(t *testing.T) {
	assert.Equal(t, "New MoodRoute Chat", makeConversationTitle("   "))
	assert.Equal(t, "Cozy walk in Bergen", makeConversationTitle("Cozy   walk\n in Bergen"))

	long := makeConversationTitle("I want a really long and winding route through every single neighborhood of Oslo")
	assert.Len(t, long, compactTitleLength+3)
	assert.True(t, len(long) < 80)

	cyrillic := makeConversationTitle(strings.Repeat("я", 100))
	assert.True(t, utf8.ValidString(cyrillic))
	assert.Equal(t, strings.Repeat("я", compactTitleLength)+"...", cyrillic)
}

func TestShortPreview(t *testing.T) {
	assert.Equal(t, "hello there", shortPreview("hello   there"))

	long := ""
	for i := 0; i < 30; i++ {
		long += "wordssss "
	}
	preview := shortPreview(long)
	assert.Len(t, preview, previewLength+3)

	cyrillic := shortPreview(strings.Repeat("ж", 300))
	assert.True(t, utf8.ValidString(cyrillic))
	assert.Equal(t, previewLength+3, utf8.RuneCountInString(cyrillic))
}

func TestNormalizeVisitedPlaces(t *testing.T) {
	places := normalizeVisitedPlaces([]string{
		"  Bryggen  ",
		"",
		"Bryggen",
		"Fløyen",
	})
	assert.Equal(t, []string{"Bryggen", "Fløyen"}, places)

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	capped := normalizeVisitedPlaces([]string{string(long)})
	require.Len(t, capped, 1)
	assert.Len(t, capped[0], maxVisitedPlaceLength+3)

	wide := normalizeVisitedPlaces([]string{strings.Repeat("ø", 200)})
	require.Len(t, wide, 1)
	assert.True(t, utf8.ValidString(wide[0]))
	assert.Equal(t, strings.Repeat("ø", maxVisitedPlaceLength)+"...", wide[0])

	many := make([]string, 200)
	for i := range many {
		many[i] = "place-" + string(rune('0'+i%10)) + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26))
	}
	assert.LessOrEqual(t, len(normalizeVisitedPlaces(many)), maxVisitedPlaces)
}

func TestDecodeDataURLImage(t *testing.T) {
	// 1x1 transparent gif, base64.
	mimeType, data, ok := decodeDataURLImage("data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7")
	require.True(t, ok)
	assert.Equal(t, "image/gif", mimeType)
	assert.NotEmpty(t, data)

	mimeType, _, ok = decodeDataURLImage("data:image/jpg;base64,aGVsbG8=")
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", mimeType)

	_, _, ok = decodeDataURLImage("data:text/plain;base64,aGVsbG8=")
	assert.False(t, ok)
	_, _, ok = decodeDataURLImage("not a data url")
	assert.False(t, ok)
	_, _, ok = decodeDataURLImage("")
	assert.False(t, ok)
}

func TestSanitizeUploadFileName(t *testing.T) {
	assert.Equal(t, "uploaded-image", sanitizeUploadFileName(""))
	assert.Equal(t, "uploaded-image", sanitizeUploadFileName("<<<>>>"))
	assert.Equal(t, "my photo.png", sanitizeUploadFileName("  my photo.png  "))
	assert.Equal(t, "passwd", sanitizeUploadFileName("/etc/passwd"))
}

func TestNormalizeChatAttachments(t *testing.T) {
	attachments := normalizeChatAttachments([]ai.Attachment{
		{URL: "/uploads/a.png", FileName: "a.png"},
		{URL: "https://evil.example/x.png", FileName: "x.png"},
		{URL: "/uploads/../etc/passwd", FileName: "p"},
	})
	require.Len(t, attachments, 1)
	assert.Equal(t, "/uploads/a.png", attachments[0].URL)

	many := make([]ai.Attachment, 5)
	for i := range many {
		many[i] = ai.Attachment{URL: "/uploads/img.png", FileName: "img.png"}
	}
	assert.Len(t, normalizeChatAttachments(many), ai.MaxChatAttachments)
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "kari", emailLocalPart("kari@example.com"))
	assert.Equal(t, "no-at-sign", emailLocalPart("no-at-sign"))
}
