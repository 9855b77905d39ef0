package dto

import (
	"github.com/shopspring/decimal"
)

// CreateContaReceberRequest is the payload for creating a receivable.
// dataHora is server-assigned and therefore absent here; pago is taken from
// the draft as-is.
type CreateContaReceberRequest struct {
	IDPessoa            int64           `json:"idPessoa" binding:"required,gt=0"`
	Pessoa              string          `json:"pessoa" binding:"required,max=100"`
	IDUsuarioLancamento int64           `json:"idUsuarioLancamento" binding:"required,gt=0"`
	ValorTotal          decimal.Decimal `json:"valorTotal" binding:"required,dgt0"`
	Pago                bool            `json:"pago"`
}

// UpdateContaReceberRequest is a full-record replacement draft. The ID must
// match the path identifier or the update is rejected.
type UpdateContaReceberRequest struct {
	ID                  int64           `json:"id" binding:"required,gt=0"`
	IDPessoa            int64           `json:"idPessoa" binding:"required,gt=0"`
	Pessoa              string          `json:"pessoa" binding:"required,max=100"`
	IDUsuarioLancamento int64           `json:"idUsuarioLancamento" binding:"required,gt=0"`
	ValorTotal          decimal.Decimal `json:"valorTotal" binding:"required,dgt0"`
	Pago                bool            `json:"pago"`
}
