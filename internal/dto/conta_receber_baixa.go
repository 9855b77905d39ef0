package dto

import (
	"github.com/shopspring/decimal"
)

// CreateContaReceberBaixaRequest is the payload for recording a settlement
// against a receivable.
type CreateContaReceberBaixaRequest struct {
	IDContaReceber int64           `json:"idContaReceber" binding:"required,gt=0"`
	IDUsuarioBaixa int64           `json:"idUsuarioBaixa" binding:"required,gt=0"`
	ValorPago      decimal.Decimal `json:"valorPago" binding:"required,dgt0"`
}

// UpdateContaReceberBaixaRequest is a full-record replacement draft for a
// settlement.
type UpdateContaReceberBaixaRequest struct {
	ID             int64           `json:"id" binding:"required,gt=0"`
	IDContaReceber int64           `json:"idContaReceber" binding:"required,gt=0"`
	IDUsuarioBaixa int64           `json:"idUsuarioBaixa" binding:"required,gt=0"`
	ValorPago      decimal.Decimal `json:"valorPago" binding:"required,dgt0"`
}
