// Package assets loads the static images shown in the page header.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"analyse-juridique/storage"

	"github.com/gabriel-vasile/mimetype"
)

// maxLogoSize bounds the logo read into memory
const maxLogoSize = 2 * 1024 * 1024 // 2MB

// Logo is an image embedded into the page as a data URI
type Logo struct {
	MIMEType string
	Data     []byte
}

// LoadLogo reads the logo from storage and checks that it is an image
func LoadLogo(ctx context.Context, store storage.Storage, key string) (*Logo, error) {
	rc, err := store.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load logo: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxLogoSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	if len(data) > maxLogoSize {
		return nil, fmt.Errorf("logo %s exceeds %d bytes", key, maxLogoSize)
	}

	mimeType, err := DetectImage(data)
	if err != nil {
		return nil, fmt.Errorf("logo %s: %w", key, err)
	}

	return &Logo{MIMEType: mimeType, Data: data}, nil
}

// DetectImage sniffs the content type and rejects anything but images
func DetectImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("not an image: %s", mt.String())
	}
	return mt.String(), nil
}

// DataURI returns the logo as a data: URL safe for an <img src>
func (l *Logo) DataURI() template.URL {
	if l == nil {
		return ""
	}
	return template.URL("data:" + l.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(l.Data))
}
