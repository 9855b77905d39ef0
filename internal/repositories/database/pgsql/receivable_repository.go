package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/core/domain"
	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// receivableColumns whitelists the filter/order columns of the receivable
// table, mapping API names onto the quoted camelCase identifiers the schema
// keeps for compatibility.
var receivableColumns = map[string]string{
	"id":                  `id`,
	"idPessoa":            `"idPessoa"`,
	"pessoa":              `pessoa`,
	"idUsuarioLancamento": `"idUsuarioLancamento"`,
	"valorTotal":          `"valorTotal"`,
	"dataHora":            `"dataHora"`,
	"pago":                `pago`,
}

const receivableSelect = `SELECT id, "idPessoa", pessoa, "idUsuarioLancamento", "valorTotal", "dataHora", pago FROM receivable`

type PgxReceivableRepository struct {
	BaseRepository
}

func newPgxReceivableRepository(db *pgxpool.Pool) portsrepo.ReceivableRepository {
	return &PgxReceivableRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ReceivableRepository = (*PgxReceivableRepository)(nil)

func scanReceivable(row pgx.Row) (*domain.Receivable, error) {
	var r domain.Receivable
	err := row.Scan(&r.ID, &r.IDPessoa, &r.Pessoa, &r.IDUsuarioLancamento, &r.ValorTotal, &r.DataHora, &r.Pago)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PgxReceivableRepository) Create(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	query := `
		INSERT INTO receivable ("idPessoa", pessoa, "idUsuarioLancamento", "valorTotal", pago)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, "idPessoa", pessoa, "idUsuarioLancamento", "valorTotal", "dataHora", pago;
	`
	created, err := scanReceivable(r.Pool.QueryRow(ctx, query,
		receivable.IDPessoa,
		receivable.Pessoa,
		receivable.IDUsuarioLancamento,
		receivable.ValorTotal,
		receivable.Pago,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert receivable: %w", err)
	}
	return created, nil
}

func (r *PgxReceivableRepository) Save(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	// Upsert keyed by id; dataHora stays server-assigned on insert and is
	// never replaced on update.
	query := `
		INSERT INTO receivable (id, "idPessoa", pessoa, "idUsuarioLancamento", "valorTotal", pago)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			"idPessoa" = EXCLUDED."idPessoa",
			pessoa = EXCLUDED.pessoa,
			"idUsuarioLancamento" = EXCLUDED."idUsuarioLancamento",
			"valorTotal" = EXCLUDED."valorTotal",
			pago = EXCLUDED.pago
		RETURNING id, "idPessoa", pessoa, "idUsuarioLancamento", "valorTotal", "dataHora", pago;
	`
	saved, err := scanReceivable(r.Pool.QueryRow(ctx, query,
		receivable.ID,
		receivable.IDPessoa,
		receivable.Pessoa,
		receivable.IDUsuarioLancamento,
		receivable.ValorTotal,
		receivable.Pago,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save receivable %d: %w", receivable.ID, err)
	}
	return saved, nil
}

func (r *PgxReceivableRepository) FindAll(ctx context.Context, q portsrepo.ListQuery) ([]domain.Receivable, int64, error) {
	whereSQL, args, err := buildWhere(q.Where, receivableColumns)
	if err != nil {
		return nil, 0, err
	}
	orderSQL, err := buildOrder(q.Order, receivableColumns)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM receivable`+whereSQL, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count receivables: %w", err)
	}

	pageSQL := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	pageArgs := append(args, q.Size, q.Page*q.Size)

	rows, err := r.Pool.Query(ctx, receivableSelect+whereSQL+orderSQL+pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query receivables: %w", err)
	}
	defer rows.Close()

	data, err := collectReceivables(rows)
	if err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

func (r *PgxReceivableRepository) FindPage(ctx context.Context, q portsrepo.ListQuery) ([]domain.Receivable, error) {
	whereSQL, args, err := buildWhere(q.Where, receivableColumns)
	if err != nil {
		return nil, err
	}
	orderSQL, err := buildOrder(q.Order, receivableColumns)
	if err != nil {
		return nil, err
	}

	pageSQL := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Size, q.Page*q.Size)

	rows, err := r.Pool.Query(ctx, receivableSelect+whereSQL+orderSQL+pageSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receivable page: %w", err)
	}
	defer rows.Close()

	return collectReceivables(rows)
}

func (r *PgxReceivableRepository) FindByID(ctx context.Context, id int64) (*domain.Receivable, error) {
	receivable, err := scanReceivable(r.Pool.QueryRow(ctx, receivableSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receivable by ID %d: %w", id, err)
	}
	return receivable, nil
}

func (r *PgxReceivableRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM receivable WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete receivable %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func collectReceivables(rows pgx.Rows) ([]domain.Receivable, error) {
	data := make([]domain.Receivable, 0)
	for rows.Next() {
		var r domain.Receivable
		if err := rows.Scan(&r.ID, &r.IDPessoa, &r.Pessoa, &r.IDUsuarioLancamento, &r.ValorTotal, &r.DataHora, &r.Pago); err != nil {
			return nil, fmt.Errorf("failed to scan receivable row: %w", err)
		}
		data = append(data, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receivable rows: %w", err)
	}
	return data, nil
}
