package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codelab/api-financeiro/internal/apperrors"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
)

// exportBatchSize is the page size used when walking the full result set.
// A batch shorter than this is the sole termination signal, so an exact
// multiple of it costs one extra empty query, as in the upstream service.
const exportBatchSize = 100

const (
	exportSubject  = "Exportação de Relatório"
	exportTemplate = "exportacao-relatorio"
)

// exporter is the shared tail of both export pipelines: render the table,
// capture the artifact, resolve the requesting user and hand the message to
// the mail channel.
type exporter struct {
	BaseService
	renderer portssvc.ReportRenderer
	users    portssvc.UserResolver
	mail     portssvc.MailPublisher
	archiver portssvc.ReportArchiver // optional
}

// fetchAllPages concatenates fixed-size batches until a short batch.
func fetchAllPages[T any](fetch func(page int) ([]T, error)) ([]T, error) {
	var all []T
	for page := 0; ; page++ {
		batch, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportBatchSize {
			return all, nil
		}
	}
}

// dispatch renders the table and mails it to the requesting user. The
// returned error is the raw cause; callers decide how to surface it.
func (e *exporter) dispatch(ctx context.Context, title string, idUsuario int64, table portssvc.ReportTable) error {
	filePath, err := e.renderer.Render(ctx, title, idUsuario, table)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if e.archiver != nil {
		if err := e.archiver.Archive(ctx, filePath); err != nil {
			// Retention is best-effort; the export itself proceeds.
			e.LogWarn(ctx, "Failed to archive rendered report", "path", filePath, "error", err.Error())
		}
	}

	// os.ReadFile releases the handle on every path, including read errors.
	filedata, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read rendered report %s: %w", filePath, err)
	}

	usuario, err := e.users.FindByID(ctx, idUsuario)
	if err != nil {
		return fmt.Errorf("failed to resolve user %d: %w", idUsuario, err)
	}
	if usuario.ID == 0 {
		return apperrors.ErrUserNotIdentified
	}

	msg := dto.EnviarEmail{
		Subject:  exportSubject,
		To:       usuario.Email,
		Template: exportTemplate,
		Context:  dto.EmailContext{Name: usuario.Nome},
		Attachments: []dto.EmailAttachment{{
			Filename: filepath.Base(filePath),
			Base64:   base64.StdEncoding.EncodeToString(filedata),
		}},
	}

	// Fire and forget: Publish returns once the message is enqueued.
	if err := e.mail.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish mail message: %w", err)
	}
	return nil
}

// surfaceExportErr applies the export failure policy: the user-not-found
// sentinel propagates unmodified as a client error, everything else is
// logged once with its cause and collapsed into ErrExportFailed.
func (e *exporter) surfaceExportErr(ctx context.Context, err error, logMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrUserNotIdentified) {
		return err
	}
	e.LogError(ctx, err, logMsg)
	return apperrors.ErrExportFailed
}
