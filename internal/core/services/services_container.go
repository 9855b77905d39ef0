package services

import (
	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
)

// Collaborators bundles the external collaborator ports shared by the
// export pipelines.
type Collaborators struct {
	Renderer portssvc.ReportRenderer
	Users    portssvc.UserResolver
	Mail     portssvc.MailPublisher
	Archiver portssvc.ReportArchiver // nil disables report retention
}

// NewServiceContainer wires the repositories and collaborators into the
// service facades handed to the handlers.
func NewServiceContainer(
	receivables portsrepo.ReceivableRepository,
	settlements portsrepo.SettlementRepository,
	collab Collaborators,
) *portssvc.ServiceContainer {
	reconciler := NewReconciler(receivables, settlements)

	return &portssvc.ServiceContainer{
		ContaReceber:      NewReceivableService(receivables, collab.Renderer, collab.Users, collab.Mail, collab.Archiver),
		ContaReceberBaixa: NewSettlementService(settlements, reconciler, collab.Renderer, collab.Users, collab.Mail, collab.Archiver),
	}
}
