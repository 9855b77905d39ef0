package repositories

import (
	"context"

	"github.com/codelab/api-financeiro/internal/core/domain"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
)

// ListQuery carries the pagination, ordering and filtering of a list call.
// Offset is Page*Size; Page is zero-based.
type ListQuery struct {
	Page  int
	Size  int
	Order filtering.Order
	Where filtering.Where
}

// ReceivableRepository persists receivables.
type ReceivableRepository interface {
	// Create inserts a new receivable. The identifier and dataHora are
	// assigned by the store and returned on the persisted record.
	Create(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error)

	// Save replaces the record keyed by receivable.ID, inserting it when no
	// row matches. dataHora is never touched on replacement.
	Save(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error)

	// FindAll returns one page of matching records plus the total matching
	// count, which is independent of the page size.
	FindAll(ctx context.Context, q ListQuery) ([]domain.Receivable, int64, error)

	// FindPage returns one page of matching records without counting; the
	// export pipeline walks pages until a short one.
	FindPage(ctx context.Context, q ListQuery) ([]domain.Receivable, error)

	// FindByID returns the record or apperrors.ErrNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Receivable, error)

	// Delete hard-deletes by identifier and reports whether exactly one row
	// was removed. A miss is (false, nil), not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}
