// Package share produces the QR code readers scan to open a post on
// another device.
package share

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// PostQR encodes the public URL of a post as a PNG QR code.
func PostQR(baseURL string, postID int64) ([]byte, error) {
	url := fmt.Sprintf("%s/posts/%d", strings.TrimSuffix(baseURL, "/"), postID)
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode share QR: %w", err)
	}
	return png, nil
}
