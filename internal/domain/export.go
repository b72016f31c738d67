package domain

import "context"

// ExportUsecase renders a user's full record set, sorted by serial number,
// into portable formats. Exports are derived views: the row serial written
// into each artifact is the 1-based row position, independent of the
// persisted SerialNo, and nothing is mutated.
type ExportUsecase interface {
	ExportCSV(ctx context.Context, userID string) ([]byte, string, error)
	ExportPDF(ctx context.Context, userID string) ([]byte, string, error)
	ExportXLSX(ctx context.Context, userID string) ([]byte, string, error)
}
