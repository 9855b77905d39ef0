package services

import (
	"context"
	"fmt"
	"sync"

	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Reconciler keeps a receivable's pago flag consistent with the sum of its
// settlements. The read-sum-read-write sequence is serialized per receivable
// identifier: two concurrent settlement writes against the same receivable
// reconcile one after the other instead of racing on the flag.
type Reconciler struct {
	receivables portsrepo.ReceivableRepository
	settlements portsrepo.SettlementRepository

	locks sync.Map // receivable id -> *sync.Mutex
}

// NewReconciler creates a reconciler over the two stores.
func NewReconciler(receivables portsrepo.ReceivableRepository, settlements portsrepo.SettlementRepository) *Reconciler {
	return &Reconciler{receivables: receivables, settlements: settlements}
}

// Reconcile recomputes the pago flag of one receivable: it sums the amount
// of every settlement referencing it at full decimal precision and persists
// pago = (sum >= valorTotal).
func (r *Reconciler) Reconcile(ctx context.Context, idContaReceber int64) error {
	mu := r.lockFor(idContaReceber)
	mu.Lock()
	defer mu.Unlock()

	baixas, err := r.settlements.FindByReceivableID(ctx, idContaReceber)
	if err != nil {
		return fmt.Errorf("failed to load settlements for receivable %d: %w", idContaReceber, err)
	}

	total := decimal.Zero
	for _, baixa := range baixas {
		total = total.Add(baixa.ValorPago)
	}

	venda, err := r.receivables.FindByID(ctx, idContaReceber)
	if err != nil {
		return fmt.Errorf("failed to load receivable %d: %w", idContaReceber, err)
	}

	venda.Pago = total.GreaterThanOrEqual(venda.ValorTotal)

	if _, err := r.receivables.Save(ctx, *venda); err != nil {
		return fmt.Errorf("failed to save receivable %d after reconciliation: %w", idContaReceber, err)
	}
	return nil
}

func (r *Reconciler) lockFor(id int64) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
