package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is a partial or full payment ("baixa") recorded against exactly
// one receivable. It never outlives its receivable: the schema cascades the
// delete.
type Settlement struct {
	ID             int64           `json:"id"`
	IDContaReceber int64           `json:"idContaReceber"`
	IDUsuarioBaixa int64           `json:"idUsuarioBaixa"`
	ValorPago      decimal.Decimal `json:"valorPago"`
	DataHora       time.Time       `json:"dataHora"`
}
