package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/semaphore"
)

// Attachment is a user-uploaded image referenced from a chat message.
type Attachment struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// MaxChatAttachments caps how many images ride along with one message.
const MaxChatAttachments = 2

// safeUploadPathPattern matches only flat file references under /uploads,
// which keeps path traversal out of the converter.
var safeUploadPathPattern = regexp.MustCompile(`^/uploads/[A-Za-z0-9._-]+$`)

var imageExtensionToMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// IsSafeUploadURL reports whether uploadURL points at a stored upload.
func IsSafeUploadURL(uploadURL string) bool {
	return safeUploadPathPattern.MatchString(uploadURL)
}

// ImageConverter turns stored uploads into inline data URLs for the model.
type ImageConverter struct {
	uploadsDir string
	maxBytes   int64

	// Base64-encoding several multi-megabyte images at once is the only
	// memory-heavy step in the request path, so cap the concurrency.
	sem *semaphore.Weighted
}

// NewImageConverter creates a converter reading from uploadsDir.
func NewImageConverter(uploadsDir string, maxBytes int64) *ImageConverter {
	return &ImageConverter{
		uploadsDir: uploadsDir,
		maxBytes:   maxBytes,
		sem:        semaphore.NewWeighted(4),
	}
}

// ConvertUploadToDataURL reads the referenced upload and returns it as a
// base64 data URL. Unsafe references, unknown extensions, and oversized
// files all return "" without an error.
func (c *ImageConverter) ConvertUploadToDataURL(ctx context.Context, uploadURL string) (string, error) {
	if !IsSafeUploadURL(uploadURL) {
		return "", nil
	}

	fileName := path.Base(uploadURL)
	mime, ok := imageExtensionToMIME[strings.ToLower(path.Ext(fileName))]
	if !ok {
		return "", nil
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.sem.Release(1)

	filePath := filepath.Join(c.uploadsDir, fileName)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	if len(data) == 0 || int64(len(data)) > c.maxBytes {
		return "", nil
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}

// BuildImageParts converts attachments into image message parts. Failures
// are logged and skipped so one broken upload does not sink the request.
func (c *ImageConverter) BuildImageParts(ctx context.Context, attachments []Attachment) []openai.ChatMessagePart {
	if len(attachments) == 0 {
		return nil
	}
	if len(attachments) > MaxChatAttachments {
		attachments = attachments[:MaxChatAttachments]
	}

	parts := []openai.ChatMessagePart{}
	for _, attachment := range attachments {
		dataURL, err := c.ConvertUploadToDataURL(ctx, attachment.URL)
		if err != nil {
			slog.Error("failed to convert upload for model", "url", attachment.URL, "error", err)
			continue
		}
		if dataURL == "" {
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURL,
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	return parts
}
