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

var settlementColumns = map[string]string{
	"id":             `id`,
	"idContaReceber": `"idContaReceber"`,
	"idUsuarioBaixa": `"idUsuarioBaixa"`,
	"valorPago":      `"valorPago"`,
	"dataHora":       `"dataHora"`,
}

const settlementSelect = `SELECT id, "idContaReceber", "idUsuarioBaixa", "valorPago", "dataHora" FROM settlement`

type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(db *pgxpool.Pool) portsrepo.SettlementRepository {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SettlementRepository = (*PgxSettlementRepository)(nil)

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(&s.ID, &s.IDContaReceber, &s.IDUsuarioBaixa, &s.ValorPago, &s.DataHora)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxSettlementRepository) Create(ctx context.Context, settlement domain.Settlement) (*domain.Settlement, error) {
	query := `
		INSERT INTO settlement ("idContaReceber", "idUsuarioBaixa", "valorPago")
		VALUES ($1, $2, $3)
		RETURNING id, "idContaReceber", "idUsuarioBaixa", "valorPago", "dataHora";
	`
	created, err := scanSettlement(r.Pool.QueryRow(ctx, query,
		settlement.IDContaReceber,
		settlement.IDUsuarioBaixa,
		settlement.ValorPago,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert settlement: %w", err)
	}
	return created, nil
}

func (r *PgxSettlementRepository) Save(ctx context.Context, settlement domain.Settlement) (*domain.Settlement, error) {
	query := `
		INSERT INTO settlement (id, "idContaReceber", "idUsuarioBaixa", "valorPago")
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			"idContaReceber" = EXCLUDED."idContaReceber",
			"idUsuarioBaixa" = EXCLUDED."idUsuarioBaixa",
			"valorPago" = EXCLUDED."valorPago"
		RETURNING id, "idContaReceber", "idUsuarioBaixa", "valorPago", "dataHora";
	`
	saved, err := scanSettlement(r.Pool.QueryRow(ctx, query,
		settlement.ID,
		settlement.IDContaReceber,
		settlement.IDUsuarioBaixa,
		settlement.ValorPago,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save settlement %d: %w", settlement.ID, err)
	}
	return saved, nil
}

func (r *PgxSettlementRepository) FindAll(ctx context.Context, q portsrepo.ListQuery) ([]domain.Settlement, int64, error) {
	whereSQL, args, err := buildWhere(q.Where, settlementColumns)
	if err != nil {
		return nil, 0, err
	}
	orderSQL, err := buildOrder(q.Order, settlementColumns)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM settlement`+whereSQL, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	pageSQL := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	pageArgs := append(args, q.Size, q.Page*q.Size)

	rows, err := r.Pool.Query(ctx, settlementSelect+whereSQL+orderSQL+pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	data, err := collectSettlements(rows)
	if err != nil {
		return nil, 0, err
	}
	return data, count, nil
}

func (r *PgxSettlementRepository) FindPage(ctx context.Context, q portsrepo.ListQuery) ([]domain.Settlement, error) {
	whereSQL, args, err := buildWhere(q.Where, settlementColumns)
	if err != nil {
		return nil, err
	}
	orderSQL, err := buildOrder(q.Order, settlementColumns)
	if err != nil {
		return nil, err
	}

	pageSQL := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Size, q.Page*q.Size)

	rows, err := r.Pool.Query(ctx, settlementSelect+whereSQL+orderSQL+pageSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement page: %w", err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

func (r *PgxSettlementRepository) FindByID(ctx context.Context, id int64) (*domain.Settlement, error) {
	settlement, err := scanSettlement(r.Pool.QueryRow(ctx, settlementSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %d: %w", id, err)
	}
	return settlement, nil
}

func (r *PgxSettlementRepository) FindByReceivableID(ctx context.Context, idContaReceber int64) ([]domain.Settlement, error) {
	rows, err := r.Pool.Query(ctx, settlementSelect+` WHERE "idContaReceber" = $1`, idContaReceber)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements of receivable %d: %w", idContaReceber, err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

func (r *PgxSettlementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM settlement WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete settlement %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func collectSettlements(rows pgx.Rows) ([]domain.Settlement, error) {
	data := make([]domain.Settlement, 0)
	for rows.Next() {
		var s domain.Settlement
		if err := rows.Scan(&s.ID, &s.IDContaReceber, &s.IDUsuarioBaixa, &s.ValorPago, &s.DataHora); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		data = append(data, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement rows: %w", err)
	}
	return data, nil
}
