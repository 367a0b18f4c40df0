package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrEmptyImage = errors.New("image payload is empty")

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	EncodeBase64(data []byte) *string
	DecodeBase64Image(encoded string) ([]byte, error)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// EncodeBase64 returns nil for an empty payload so it serializes as null.
func (u *utils) EncodeBase64(data []byte) *string {
	if len(data) == 0 {
		return nil
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return &encoded
}

// DecodeBase64Image accepts plain standard base64 as well as a data URL
// ("data:image/jpeg;base64,...") as produced by browser canvas exports.
func (u *utils) DecodeBase64Image(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
			encoded = encoded[idx+len(";base64,"):]
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	return data, nil
}
