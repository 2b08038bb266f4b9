package portfolio

import (
	"encoding/base64"
	"errors"
	"strings"
)

// MaxResumeBytes caps the decoded resume payload.
const MaxResumeBytes = 5 * 1024 * 1024

var (
	ErrResumeNotDataURL = errors.New("resume must be a base64 data URL")
	ErrResumeTooLarge   = errors.New("resume exceeds 5MB")
)

// Resume is a decoded inline upload.
type Resume struct {
	MediaType string
	Data      []byte
	// DataURL is the original inline form, kept when no uploader is available.
	DataURL string
}

// ParseResumeDataURL decodes "data:<media type>;base64,<payload>".
func ParseResumeDataURL(s string) (*Resume, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrResumeNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrResumeNotDataURL
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, ErrResumeNotDataURL
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxResumeBytes+3 {
		return nil, ErrResumeTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrResumeNotDataURL
	}
	if len(data) > MaxResumeBytes {
		return nil, ErrResumeTooLarge
	}
	return &Resume{MediaType: mediaType, Data: data, DataURL: s}, nil
}
