package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"log/slog"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// jpegQuality is the encoding quality for stored images. Product shots
// are small; 85 keeps artifacts invisible at display sizes.
const jpegQuality = 85

// Decode parses image bytes into an image.Image.
// JPEG, PNG, GIF, and WebP are accepted.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// EncodeJPEG encodes an image as JPEG for storage.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Processor normalizes product images and stores them.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Ingest normalizes raw image bytes to JPEG, stores them under the
// product ID, and returns the BlurHash placeholder. The image is decoded
// once and reused for both the re-encode and the hash.
// A BlurHash failure is not fatal: the image is already stored and the
// placeholder is cosmetic, so the hash comes back empty with no error.
func (p *Processor) Ingest(ctx context.Context, productID string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, format, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("decode image for %s: %w", productID, err)
	}

	// Already JPEG: keep the original bytes, re-encoding only loses quality.
	jpegData := data
	if format != "jpeg" {
		if jpegData, err = EncodeJPEG(img); err != nil {
			return "", fmt.Errorf("normalize image for %s: %w", productID, err)
		}
	}

	if err := p.storage.Save(productID, jpegData); err != nil {
		return "", fmt.Errorf("save image for %s: %w", productID, err)
	}

	hash, err := BlurHash(img)
	if err != nil {
		p.logger.Warn("failed to compute blurhash",
			"product_id", productID,
			"error", err,
		)
		return "", nil
	}

	p.logger.Debug("ingested product image",
		"product_id", productID,
		"size", len(jpegData),
		"blurhash", hash,
	)

	return hash, nil
}
