package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

const (
	// DefaultLanguage is used when the caller did not pick a language
	DefaultLanguage = "en"

	// ImageRequestText is sent to the service for an image without a caption
	ImageRequestText = "Please analyze this plant image for diseases"
	// ImageDisplayText is what the log shows for an image without a caption
	ImageDisplayText = "Image uploaded for disease detection"
)

// RequestInput is what the user supplied for one send
type RequestInput struct {
	Text     string
	Language string
	Location *LocationSnapshot
	Image    []byte
}

// RequestEnvelope is the normalized outbound chat request
type RequestEnvelope struct {
	Text        string
	DisplayText string
	SessionID   string
	Modality    Modality
	Language    string
	Location    *LocationSnapshot
	ImageData   []byte
	Image       *ImageRef
}

// BuildRequest applies the composition rules for text and image sends.
// Text-only input with blank text returns ErrEmptyMessage.
func BuildRequest(sessionID string, in RequestInput) (RequestEnvelope, error) {
	text := strings.TrimSpace(in.Text)

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = DefaultLanguage
	}

	env := RequestEnvelope{
		Text:        text,
		DisplayText: text,
		SessionID:   sessionID,
		Modality:    ModalityText,
		Language:    language,
	}
	if in.Location != nil {
		loc := *in.Location
		env.Location = &loc
	}

	if len(in.Image) > 0 {
		env.Modality = ModalityImage
		env.ImageData = in.Image
		env.Image = NewImageRef(in.Image)
		if text == "" {
			env.Text = ImageRequestText
			env.DisplayText = ImageDisplayText
		}
		return env, nil
	}

	if text == "" {
		return RequestEnvelope{}, ErrEmptyMessage
	}
	return env, nil
}

// NewImageRef describes image bytes by digest and size
func NewImageRef(data []byte) *ImageRef {
	sum := sha256.Sum256(data)
	return &ImageRef{
		Digest:    hex.EncodeToString(sum[:]),
		Size:      len(data),
		MediaType: http.DetectContentType(data),
	}
}
