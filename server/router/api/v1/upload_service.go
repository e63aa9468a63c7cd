package v1

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
)

var (
	dataURLImagePattern  = regexp.MustCompile(`^data:(image/(?:png|jpeg|jpg|webp|gif));base64,([A-Za-z0-9+/=]+)$`)
	uploadFileNameStrip  = regexp.MustCompile(`[^\w.\- ]+`)
	imageMIMEToExtension = map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpg",
		"image/webp": "webp",
		"image/gif":  "gif",
	}
)

// maxStoredImageDimension bounds the longer edge of stored png/jpeg uploads.
const maxStoredImageDimension = 2000

type uploadImageRequest struct {
	FileName string `json:"filename"`
	DataURL  string `json:"dataUrl"`
}

func (s *APIV1Service) UploadImage(c echo.Context) error {
	request := &uploadImageRequest{}
	if err := c.Bind(request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body.")
	}

	mimeType, data, ok := decodeDataURLImage(request.DataURL)
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid image data.")
	}
	if len(data) > s.Profile.MaxImageBytes {
		return errorJSON(c, http.StatusBadRequest,
			fmt.Sprintf("Image is too large. Max %d MB.", s.Profile.MaxImageBytes/(1024*1024)))
	}

	data = downscaleIfOversized(mimeType, data)

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to upload image.")
	}

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to upload image.")
	}
	uniqueName := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), imageMIMEToExtension[mimeType])

	if err := os.WriteFile(filepath.Join(s.uploadsDir, uniqueName), data, 0o644); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to upload image.")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"url":      "/uploads/" + uniqueName,
		"fileName": sanitizeUploadFileName(request.FileName),
	})
}

// decodeDataURLImage parses a base64 image data URL against the allowlist.
func decodeDataURLImage(dataURL string) (string, []byte, bool) {
	match := dataURLImagePattern.FindStringSubmatch(normalizeText(dataURL))
	if match == nil {
		return "", nil, false
	}
	mimeType := match[1]
	if mimeType == "image/jpg" {
		mimeType = "image/jpeg"
	}
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil || len(data) == 0 {
		return "", nil, false
	}
	return mimeType, data, true
}

func sanitizeUploadFileName(name string) string {
	cleaned := normalizeText(uploadFileNameStrip.ReplaceAllString(normalizeText(name), ""))
	if len(cleaned) > 80 {
		cleaned = cleaned[:80]
	}
	if cleaned == "" {
		return "uploaded-image"
	}
	return cleaned
}

// downscaleIfOversized shrinks very large png/jpeg uploads before storage.
// Other formats and undecodable data pass through unchanged.
func downscaleIfOversized(mimeType string, data []byte) []byte {
	if mimeType != "image/png" && mimeType != "image/jpeg" {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxStoredImageDimension && bounds.Dy() <= maxStoredImageDimension {
		return data
	}

	resized := imaging.Fit(img, maxStoredImageDimension, maxStoredImageDimension, imaging.Lanczos)
	format := imaging.PNG
	if mimeType == "image/jpeg" {
		format = imaging.JPEG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return data
	}
	return buf.Bytes()
}
