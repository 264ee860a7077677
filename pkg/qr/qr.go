// Package qr renders contact payloads into base64-encoded QR code PNGs.
package qr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the pixel width/height of generated QR code images.
const DefaultSize = 256

// EncodeContact serialises contactInfo to compact JSON and renders it as a
// PNG QR code, returned base64-encoded so it can be stored and served the
// same way as client-uploaded images.
func EncodeContact(contactInfo any, size int) (string, error) {
	if contactInfo == nil {
		return "", errors.New("qr: contact info is required")
	}
	if size <= 0 {
		size = DefaultSize
	}

	payload, err := json.Marshal(contactInfo)
	if err != nil {
		return "", fmt.Errorf("qr: marshal contact info: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("qr: encode: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
