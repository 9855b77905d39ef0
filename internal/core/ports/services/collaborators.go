package services

import (
	"context"

	"github.com/codelab/api-financeiro/internal/core/domain"
	"github.com/codelab/api-financeiro/internal/dto"
)

// CellStyle carries the per-column style hints handed to the renderer.
type CellStyle struct {
	// HAlign is "left", "right" or "center". Empty means renderer default.
	HAlign string
}

// ReportTable describes one report: column headers, per-column style hints
// keyed by column index, and pre-formatted row cells.
type ReportTable struct {
	Columns      []string
	ColumnStyles map[int]CellStyle
	Rows         [][]string
}

// ReportRenderer turns a table into a file on local storage and returns its
// path. The renderer is opaque to the pipeline: any implementation producing
// a readable file at the returned path satisfies the contract.
type ReportRenderer interface {
	Render(ctx context.Context, title string, idUsuario int64, table ReportTable) (string, error)
}

// UserResolver answers user profiles from the remote user API. A profile
// with ID == 0 is the documented "not found" sentinel; transport failures
// surface as apperrors.ErrRemoteCommunication.
type UserResolver interface {
	FindByID(ctx context.Context, id int64) (domain.User, error)
}

// MailPublisher hands a message to the asynchronous mail channel. Publish
// returns once the message is enqueued; delivery is never awaited.
type MailPublisher interface {
	Publish(ctx context.Context, msg dto.EnviarEmail) error
}

// ReportArchiver retains a copy of a rendered report in object storage.
// Archiving is best-effort: the export pipeline logs failures and moves on.
type ReportArchiver interface {
	Archive(ctx context.Context, filePath string) error
}
