package ai

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// defaultMaxEdge bounds the long edge of photos sent to the vision API.
// Box-art photos from phone cameras are far larger than the service needs,
// and smaller payloads keep request sizes and token costs down.
const defaultMaxEdge = 1024

// PreparePhoto decodes a box-art photo, downscales it so its longest edge is
// at most maxEdge pixels, and re-encodes it as a JPEG data URL suitable for a
// vision request. maxEdge <= 0 uses the default.
func PreparePhoto(data []byte, maxEdge int) (string, error) {
	if maxEdge <= 0 {
		maxEdge = defaultMaxEdge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode photo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, maxEdge, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxEdge, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// PreparePhotoFile reads a photo from disk and prepares it for a vision request.
func PreparePhotoFile(path string, maxEdge int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	return PreparePhoto(data, maxEdge)
}
