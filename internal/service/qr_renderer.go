package service

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const defaultQRSize = 256

// QRCodeRenderer implements ports.QRRenderer.
type QRCodeRenderer struct {
	size int
}

// NewQRCodeRenderer renders square PNGs of size pixels (256 if size <= 0).
func NewQRCodeRenderer(size int) *QRCodeRenderer {
	if size <= 0 {
		size = defaultQRSize
	}
	return &QRCodeRenderer{size: size}
}

// RenderPNG encodes content at medium error correction.
func (r *QRCodeRenderer) RenderPNG(content string) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	code, err = barcode.Scale(code, r.size, r.size)
	if err != nil {
		return nil, fmt.Errorf("scaling qr: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
