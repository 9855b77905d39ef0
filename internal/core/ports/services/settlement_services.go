package services

import (
	"context"

	"github.com/codelab/api-financeiro/internal/core/domain"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
)

// SettlementSvcFacade is the full service surface for settlements. Create
// and Update only return after the parent receivable has been reconciled.
type SettlementSvcFacade interface {
	Create(ctx context.Context, req dto.CreateContaReceberBaixaRequest) (*domain.Settlement, error)

	FindAll(ctx context.Context, page, size int, order filtering.Order, filter []filtering.Criterion) ([]domain.Settlement, int64, error)

	FindOne(ctx context.Context, id int64) (*domain.Settlement, error)

	Update(ctx context.Context, id int64, req dto.UpdateContaReceberBaixaRequest) (*domain.Settlement, error)

	Delete(ctx context.Context, id int64) (bool, error)

	Export(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) (bool, error)
}
