package primary

import (
	"bytes"
	"context"
)

// ExportService defines the file export use cases.
type ExportService interface {
	MembersXLSX(ctx context.Context, actorUID, clubID string) (*bytes.Buffer, string, error)
}
