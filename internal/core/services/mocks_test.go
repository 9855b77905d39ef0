package services_test

import (
	"context"

	"github.com/codelab/api-financeiro/internal/core/domain"
	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ReceivableRepository ---
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) Create(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	args := m.Called(ctx, receivable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) Save(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	args := m.Called(ctx, receivable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAll(ctx context.Context, q portsrepo.ListQuery) ([]domain.Receivable, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Receivable), args.Get(1).(int64), args.Error(2)
}

func (m *MockReceivableRepository) FindPage(ctx context.Context, q portsrepo.ListQuery) ([]domain.Receivable, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByID(ctx context.Context, id int64) (*domain.Receivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) Create(ctx context.Context, settlement domain.Settlement) (*domain.Settlement, error) {
	args := m.Called(ctx, settlement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) Save(ctx context.Context, settlement domain.Settlement) (*domain.Settlement, error) {
	args := m.Called(ctx, settlement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) FindAll(ctx context.Context, q portsrepo.ListQuery) ([]domain.Settlement, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Settlement), args.Get(1).(int64), args.Error(2)
}

func (m *MockSettlementRepository) FindPage(ctx context.Context, q portsrepo.ListQuery) ([]domain.Settlement, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) FindByID(ctx context.Context, id int64) (*domain.Settlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) FindByReceivableID(ctx context.Context, idContaReceber int64) ([]domain.Settlement, error) {
	args := m.Called(ctx, idContaReceber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock ReportRenderer ---
type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) Render(ctx context.Context, title string, idUsuario int64, table portssvc.ReportTable) (string, error) {
	args := m.Called(ctx, title, idUsuario, table)
	return args.String(0), args.Error(1)
}

// --- Mock UserResolver ---
type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) FindByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

// --- Mock MailPublisher ---
type MockMailPublisher struct {
	mock.Mock
}

func (m *MockMailPublisher) Publish(ctx context.Context, msg dto.EnviarEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// --- Mock ReportArchiver ---
type MockReportArchiver struct {
	mock.Mock
}

func (m *MockReportArchiver) Archive(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}
