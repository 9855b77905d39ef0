package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/core/domain"
	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
	"github.com/codelab/api-financeiro/internal/utils/format"
)

const settlementReportTitle = "Listagem de Baixas de Contas a Receber"

// SettlementService implements the settlement CRUD, search and export
// operations. Every settlement write reconciles the parent receivable
// before returning to the caller.
type SettlementService struct {
	exporter
	repo       portsrepo.SettlementRepository
	reconciler *Reconciler
}

// NewSettlementService creates a settlement service. archiver may be nil.
func NewSettlementService(
	repo portsrepo.SettlementRepository,
	reconciler *Reconciler,
	renderer portssvc.ReportRenderer,
	users portssvc.UserResolver,
	mail portssvc.MailPublisher,
	archiver portssvc.ReportArchiver,
) *SettlementService {
	return &SettlementService{
		exporter:   exporter{renderer: renderer, users: users, mail: mail, archiver: archiver},
		repo:       repo,
		reconciler: reconciler,
	}
}

var _ portssvc.SettlementSvcFacade = (*SettlementService)(nil)

// Create persists a new settlement, then reconciles the parent receivable's
// pago flag. The caller only observes the create once reconciliation has
// completed.
func (s *SettlementService) Create(ctx context.Context, req dto.CreateContaReceberBaixaRequest) (*domain.Settlement, error) {
	settlement := domain.Settlement{
		IDContaReceber: req.IDContaReceber,
		IDUsuarioBaixa: req.IDUsuarioBaixa,
		ValorPago:      req.ValorPago,
	}

	created, err := s.repo.Create(ctx, settlement)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, req.IDContaReceber); err != nil {
		return nil, fmt.Errorf("settlement %d created but reconciliation failed: %w", created.ID, err)
	}
	return created, nil
}

// FindAll returns one page of matching settlements plus the total matching
// count.
func (s *SettlementService) FindAll(ctx context.Context, page, size int, order filtering.Order, filter []filtering.Criterion) ([]domain.Settlement, int64, error) {
	q := portsrepo.ListQuery{
		Page:  page,
		Size:  size,
		Order: order,
		Where: filtering.Compile(filter...),
	}

	data, count, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	return data, count, nil
}

// FindOne returns the settlement or nil when no record matches.
func (s *SettlementService) FindOne(ctx context.Context, id int64) (*domain.Settlement, error) {
	settlement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find settlement %d: %w", id, err)
	}
	return settlement, nil
}

// Update replaces the record keyed by id with the draft and reconciles the
// parent receivable. Drafts whose id disagrees with the path identifier are
// refused without touching storage.
func (s *SettlementService) Update(ctx context.Context, id int64, req dto.UpdateContaReceberBaixaRequest) (*domain.Settlement, error) {
	if id != req.ID {
		return nil, apperrors.ErrIDMismatch
	}

	settlement := domain.Settlement{
		ID:             req.ID,
		IDContaReceber: req.IDContaReceber,
		IDUsuarioBaixa: req.IDUsuarioBaixa,
		ValorPago:      req.ValorPago,
	}

	saved, err := s.repo.Save(ctx, settlement)
	if err != nil {
		return nil, fmt.Errorf("failed to update settlement %d: %w", id, err)
	}

	if err := s.reconciler.Reconcile(ctx, req.IDContaReceber); err != nil {
		return nil, fmt.Errorf("settlement %d updated but reconciliation failed: %w", id, err)
	}
	return saved, nil
}

// Delete hard-deletes by id and reports whether exactly one record was
// removed. A miss yields false without error.
func (s *SettlementService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete settlement %d: %w", id, err)
	}
	return removed, nil
}

// Export renders the entire filtered/ordered settlement set and mails it to
// the requesting user.
func (s *SettlementService) Export(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) (bool, error) {
	err := s.surfaceExportErr(ctx, s.doExport(ctx, idUsuario, order, filter), "Failed to export settlements report")
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SettlementService) doExport(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) error {
	where := filtering.Compile(filter...)

	reportData, err := fetchAllPages(func(page int) ([]domain.Settlement, error) {
		return s.repo.FindPage(ctx, portsrepo.ListQuery{
			Page:  page,
			Size:  exportBatchSize,
			Order: order,
			Where: where,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to fetch settlements for export: %w", err)
	}

	table := portssvc.ReportTable{
		Columns: []string{"Código", "ID Venda", "ID Usuário Baixa", "Valor Pago", "Data Criação"},
		ColumnStyles: map[int]portssvc.CellStyle{
			3: {HAlign: "right"},
			4: {HAlign: "center"},
		},
		Rows: make([][]string, 0, len(reportData)),
	}
	for _, b := range reportData {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", b.ID),
			fmt.Sprintf("%d", b.IDContaReceber),
			fmt.Sprintf("%d", b.IDUsuarioBaixa),
			format.Monetary(b.ValorPago, 2),
			b.DataHora.Format("02/01/2006"),
		})
	}

	return s.dispatch(ctx, settlementReportTitle, idUsuario, table)
}
