package services

import (
	"context"

	"github.com/codelab/api-financeiro/internal/core/domain"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
)

// ReceivableSvcFacade is the full service surface for receivables.
type ReceivableSvcFacade interface {
	Create(ctx context.Context, req dto.CreateContaReceberRequest) (*domain.Receivable, error)

	// FindAll returns one page plus the total matching count.
	FindAll(ctx context.Context, page, size int, order filtering.Order, filter []filtering.Criterion) ([]domain.Receivable, int64, error)

	// FindOne returns nil without error when no record matches.
	FindOne(ctx context.Context, id int64) (*domain.Receivable, error)

	// Update fails with apperrors.ErrIDMismatch when id != req.ID, without
	// performing any write.
	Update(ctx context.Context, id int64, req dto.UpdateContaReceberRequest) (*domain.Receivable, error)

	// Delete reports whether exactly one record was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Export renders the entire filtered/ordered dataset and mails it to the
	// requesting user. See apperrors for the failure taxonomy.
	Export(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) (bool, error)
}
