package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QREncoder renders text as a PNG QR code.
type QREncoder interface {
	PNG(content string) ([]byte, error)
}

type PNGEncoder struct {
	size     int
	recovery qrcode.RecoveryLevel
}

// NewPNGEncoder returns an encoder producing size x size images with medium
// error recovery.
func NewPNGEncoder(size int) *PNGEncoder {
	if size <= 0 {
		size = 512
	}
	return &PNGEncoder{size: size, recovery: qrcode.Medium}
}

func (e *PNGEncoder) PNG(content string) ([]byte, error) {
	code, err := qrcode.New(content, e.recovery)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	png, err := code.PNG(e.size)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return png, nil
}
