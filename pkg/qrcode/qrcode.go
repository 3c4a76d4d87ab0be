package qrcode

import (
	qr "github.com/skip2/go-qrcode"
)

const size = 512

// Generate encodes the content into a PNG QR code.
func Generate(content string) ([]byte, error) {
	return qr.Encode(content, qr.Medium, size)
}
