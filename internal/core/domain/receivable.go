package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receivable is an amount owed by a party ("conta a receber"). Pago is kept
// consistent with the sum of the receivable's settlements by reconciliation
// after every settlement write; an explicit update may also set it.
type Receivable struct {
	ID                  int64           `json:"id"`
	IDPessoa            int64           `json:"idPessoa"`
	Pessoa              string          `json:"pessoa"`
	IDUsuarioLancamento int64           `json:"idUsuarioLancamento"`
	ValorTotal          decimal.Decimal `json:"valorTotal"`
	DataHora            time.Time       `json:"dataHora"`
	Pago                bool            `json:"pago"`
}
