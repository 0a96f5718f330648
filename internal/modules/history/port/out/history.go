package out

import (
	"context"

	"pomoterm/internal/modules/history/domain"
)

// ReportExporter renders a report to disk and returns the written path.
type ReportExporter interface {
	Export(ctx context.Context, dir string, report domain.Report) (string, error)
}
