// Package pdf renders branded report documents to PDF via a headless
// browser.
package pdf

import (
	"context"
)

// Renderer converts HTML content to a PDF document
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}
