package pgsql

import (
	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer bundles the pgsql repositories built over one pool.
type RepositoryContainer struct {
	ContaReceber      portsrepo.ReceivableRepository
	ContaReceberBaixa portsrepo.SettlementRepository
}

// NewRepositoryContainer creates all repositories over the given pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		ContaReceber:      newPgxReceivableRepository(pool),
		ContaReceberBaixa: newPgxSettlementRepository(pool),
	}
}
