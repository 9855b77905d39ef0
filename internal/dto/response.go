package dto

// Response is the envelope every endpoint answers with. Count is only
// meaningful on list responses; Message carries the localized status text
// and is empty on plain reads.
type Response[T any] struct {
	Data    T      `json:"data"`
	Count   *int64 `json:"count,omitempty"`
	Message string `json:"message"`
}

// NewResponse wraps data with an optional status message.
func NewResponse[T any](data T, message string) Response[T] {
	return Response[T]{Data: data, Message: message}
}

// NewListResponse wraps one page of data with the total matching count.
func NewListResponse[T any](data []T, count int64) Response[[]T] {
	return Response[[]T]{Data: data, Count: &count}
}

// Localized status messages, kept verbatim from the upstream API so
// existing clients keep working.
const (
	MsgSalvoSucesso           = "Salvo com sucesso!"
	MsgAtualizadoSucesso      = "Atualizado com sucesso!"
	MsgDesativadoSucesso      = "Desativado com sucesso!"
	MsgIDsDiferentes          = "Os IDs informados são diferentes."
	MsgUsuarioNaoIdentificado = "Usuário não identificado."
	MsgErroExportarRelatorio  = "Erro ao exportar o relatório."
	MsgErroComunicacaoUsuario = "Erro na comunicação com a API de usuário."
	MsgIniciadaGeracao        = "Iniciada a geração do relatório. Em breve você o receberá por e-mail."
)
