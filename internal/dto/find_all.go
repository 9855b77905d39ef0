package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
)

// FindAllParams binds the pagination query of the list endpoints. Order and
// Filter arrive JSON-encoded and are decoded by ParseOrder / ParseFilter,
// matching the upstream API that sends them as serialized objects.
type FindAllParams struct {
	Page   int    `form:"page,default=0" binding:"min=0"`
	Size   int    `form:"size,default=10" binding:"min=1"`
	Order  string `form:"order"`
	Filter string `form:"filter"`
}

// ExportRequest triggers a report export. Filter may hold a single criterion
// object or an array of them.
type ExportRequest struct {
	IDUsuario int64           `json:"idUsuario" binding:"required,gt=0"`
	Order     filtering.Order `json:"order" binding:"required"`
	Filter    json.RawMessage `json:"filter"`
}

// ParseOrder decodes an order descriptor like {"column":"id","sort":"ASC"}.
// An empty string falls back to ordering by id ascending.
func ParseOrder(raw string) (filtering.Order, error) {
	if raw == "" {
		return filtering.Order{Column: "id", Sort: "asc"}, nil
	}

	var order filtering.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return filtering.Order{}, fmt.Errorf("%w: invalid order descriptor: %v", apperrors.ErrValidation, err)
	}
	return NormalizeOrder(order)
}

// NormalizeOrder validates the sort direction and lower-cases it. The column
// itself is validated against a whitelist by the repository.
func NormalizeOrder(order filtering.Order) (filtering.Order, error) {
	if order.Column == "" {
		return filtering.Order{}, fmt.Errorf("%w: order column is required", apperrors.ErrValidation)
	}
	sort := strings.ToLower(order.Sort)
	if sort != "asc" && sort != "desc" {
		return filtering.Order{}, fmt.Errorf("%w: order sort must be asc or desc", apperrors.ErrValidation)
	}
	order.Sort = sort
	return order, nil
}

// ParseFilter decodes the filter query value, accepting either one criterion
// object or an array of them, as the upstream parse pipe does. Empty input
// yields no criteria.
func ParseFilter(raw string) ([]filtering.Criterion, error) {
	if raw == "" {
		return nil, nil
	}
	return ParseFilterJSON([]byte(raw))
}

// ParseFilterJSON is ParseFilter over already-raw JSON, used by the export
// request body.
func ParseFilterJSON(raw json.RawMessage) ([]filtering.Criterion, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []filtering.Criterion
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single filtering.Criterion
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("%w: invalid filter: %v", apperrors.ErrValidation, err)
	}
	return []filtering.Criterion{single}, nil
}
