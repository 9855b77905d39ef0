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

const receivableReportTitle = "Listagem de Contas a Receber"

// ReceivableService implements the receivable CRUD, search and export
// operations.
type ReceivableService struct {
	exporter
	repo portsrepo.ReceivableRepository
}

// NewReceivableService creates a receivable service. archiver may be nil.
func NewReceivableService(
	repo portsrepo.ReceivableRepository,
	renderer portssvc.ReportRenderer,
	users portssvc.UserResolver,
	mail portssvc.MailPublisher,
	archiver portssvc.ReportArchiver,
) *ReceivableService {
	return &ReceivableService{
		exporter: exporter{renderer: renderer, users: users, mail: mail, archiver: archiver},
		repo:     repo,
	}
}

var _ portssvc.ReceivableSvcFacade = (*ReceivableService)(nil)

// Create persists a new receivable; id and dataHora are store-assigned,
// pago is taken from the draft.
func (s *ReceivableService) Create(ctx context.Context, req dto.CreateContaReceberRequest) (*domain.Receivable, error) {
	receivable := domain.Receivable{
		IDPessoa:            req.IDPessoa,
		Pessoa:              req.Pessoa,
		IDUsuarioLancamento: req.IDUsuarioLancamento,
		ValorTotal:          req.ValorTotal,
		Pago:                req.Pago,
	}

	created, err := s.repo.Create(ctx, receivable)
	if err != nil {
		return nil, fmt.Errorf("failed to create receivable: %w", err)
	}
	return created, nil
}

// FindAll returns one page of matching receivables plus the total matching
// count.
func (s *ReceivableService) FindAll(ctx context.Context, page, size int, order filtering.Order, filter []filtering.Criterion) ([]domain.Receivable, int64, error) {
	q := portsrepo.ListQuery{
		Page:  page,
		Size:  size,
		Order: order,
		Where: filtering.Compile(filter...),
	}

	data, count, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list receivables: %w", err)
	}
	return data, count, nil
}

// FindOne returns the receivable or nil when no record matches.
func (s *ReceivableService) FindOne(ctx context.Context, id int64) (*domain.Receivable, error) {
	receivable, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find receivable %d: %w", id, err)
	}
	return receivable, nil
}

// Update replaces the record keyed by id with the draft. It refuses drafts
// whose id disagrees with the path identifier without touching storage.
func (s *ReceivableService) Update(ctx context.Context, id int64, req dto.UpdateContaReceberRequest) (*domain.Receivable, error) {
	if id != req.ID {
		return nil, apperrors.ErrIDMismatch
	}

	receivable := domain.Receivable{
		ID:                  req.ID,
		IDPessoa:            req.IDPessoa,
		Pessoa:              req.Pessoa,
		IDUsuarioLancamento: req.IDUsuarioLancamento,
		ValorTotal:          req.ValorTotal,
		Pago:                req.Pago,
	}

	saved, err := s.repo.Save(ctx, receivable)
	if err != nil {
		return nil, fmt.Errorf("failed to update receivable %d: %w", id, err)
	}
	return saved, nil
}

// Delete hard-deletes by id and reports whether exactly one record was
// removed. A miss yields false without error.
func (s *ReceivableService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete receivable %d: %w", id, err)
	}
	return removed, nil
}

// Export renders the entire filtered/ordered receivable set and mails it to
// the requesting user.
func (s *ReceivableService) Export(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) (bool, error) {
	err := s.surfaceExportErr(ctx, s.doExport(ctx, idUsuario, order, filter), "Failed to export receivables report")
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ReceivableService) doExport(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) error {
	where := filtering.Compile(filter...)

	reportData, err := fetchAllPages(func(page int) ([]domain.Receivable, error) {
		return s.repo.FindPage(ctx, portsrepo.ListQuery{
			Page:  page,
			Size:  exportBatchSize,
			Order: order,
			Where: where,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to fetch receivables for export: %w", err)
	}

	table := portssvc.ReportTable{
		Columns: []string{"Código", "Pessoa", "Valor Total", "Pago"},
		ColumnStyles: map[int]portssvc.CellStyle{
			2: {HAlign: "right"},
			3: {HAlign: "center"},
		},
		Rows: make([][]string, 0, len(reportData)),
	}
	for _, r := range reportData {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%s - %s", format.ID(r.IDPessoa), r.Pessoa),
			format.Monetary(r.ValorTotal, 2),
			format.SimNao(r.Pago),
		})
	}

	return s.dispatch(ctx, receivableReportTitle, idUsuario, table)
}
