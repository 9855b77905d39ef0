package pgsql

import (
	"fmt"
	"strings"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the shared connection pool and the predicate
// compilation helpers for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// buildWhere turns compiled predicates into a WHERE clause and its
// positional arguments. columns whitelists the filterable columns, mapping
// the API name onto the (possibly quoted) SQL identifier; anything outside
// it is a validation error, never interpolated.
func buildWhere(where filtering.Where, columns map[string]string) (string, []any, error) {
	if where.Empty() {
		return "", nil, nil
	}

	var (
		clauses []string
		args    []any
	)
	for _, p := range where.Predicates() {
		sqlCol, ok := columns[p.Column]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown filter column %q", apperrors.ErrValidation, p.Column)
		}

		switch p.Kind {
		case filtering.KindDateRange:
			clauses = append(clauses, fmt.Sprintf("%s BETWEEN $%d AND $%d", sqlCol, len(args)+1, len(args)+2))
			args = append(args, p.Start, p.End)
		case filtering.KindNumber:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", sqlCol, len(args)+1))
			args = append(args, p.Number)
		case filtering.KindContains:
			// The cast keeps substring matching lenient on non-text columns,
			// mirroring the loosely-typed upstream filter.
			clauses = append(clauses, fmt.Sprintf("%s::text ILIKE $%d", sqlCol, len(args)+1))
			args = append(args, "%"+p.Text+"%")
		default:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", sqlCol, len(args)+1))
			args = append(args, p.Value)
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// buildOrder validates the order descriptor against the same whitelist and
// renders the ORDER BY clause.
func buildOrder(order filtering.Order, columns map[string]string) (string, error) {
	sqlCol, ok := columns[order.Column]
	if !ok {
		return "", fmt.Errorf("%w: unknown order column %q", apperrors.ErrValidation, order.Column)
	}

	direction := "ASC"
	if strings.EqualFold(order.Sort, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", sqlCol, direction), nil
}
