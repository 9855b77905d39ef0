package repositories

import (
	"context"

	"github.com/codelab/api-financeiro/internal/core/domain"
)

// SettlementRepository persists settlements ("baixas").
type SettlementRepository interface {
	Create(ctx context.Context, settlement domain.Settlement) (*domain.Settlement, error)

	// Save replaces the record keyed by settlement.ID, inserting it when no
	// row matches. dataHora is never touched on replacement.
	Save(ctx context.Context, settlement domain.Settlement) (*domain.Settlement, error)

	FindAll(ctx context.Context, q ListQuery) ([]domain.Settlement, int64, error)

	FindPage(ctx context.Context, q ListQuery) ([]domain.Settlement, error)

	FindByID(ctx context.Context, id int64) (*domain.Settlement, error)

	// FindByReceivableID returns every settlement referencing the given
	// receivable, unpaginated; reconciliation sums the whole set.
	FindByReceivableID(ctx context.Context, idContaReceber int64) ([]domain.Settlement, error)

	Delete(ctx context.Context, id int64) (bool, error)
}
