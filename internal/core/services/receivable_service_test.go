package services_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/core/domain"
	portsrepo "github.com/codelab/api-financeiro/internal/core/ports/repositories"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/core/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReceivableServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockReceivableRepository
	mockRenderer *MockReportRenderer
	mockUsers    *MockUserResolver
	mockMail     *MockMailPublisher
	service      portssvc.ReceivableSvcFacade
}

func (suite *ReceivableServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReceivableRepository)
	suite.mockRenderer = new(MockReportRenderer)
	suite.mockUsers = new(MockUserResolver)
	suite.mockMail = new(MockMailPublisher)
	suite.service = services.NewReceivableService(suite.mockRepo, suite.mockRenderer, suite.mockUsers, suite.mockMail, nil)
}

// writeTempReport creates a real file for the export pipeline to read back.
func (suite *ReceivableServiceTestSuite) writeTempReport(content string) string {
	path := filepath.Join(suite.T().TempDir(), "relatorio-teste.xlsx")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// --- Test Cases ---

func (suite *ReceivableServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req := dto.CreateContaReceberRequest{
		IDPessoa:            3,
		Pessoa:              "Maria",
		IDUsuarioLancamento: 7,
		ValorTotal:          decimal.RequireFromString("150.50"),
		Pago:                false,
	}
	created := &domain.Receivable{ID: 1, IDPessoa: 3, Pessoa: "Maria", IDUsuarioLancamento: 7, ValorTotal: req.ValorTotal}

	suite.mockRepo.On("Create", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.ID == 0 && r.IDPessoa == req.IDPessoa && r.Pessoa == req.Pessoa && r.ValorTotal.Equal(req.ValorTotal) && !r.Pago
	})).Return(created, nil).Once()

	got, err := suite.service.Create(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Equal(int64(1), got.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreate_RepoError() {
	ctx := context.Background()
	req := dto.CreateContaReceberRequest{IDPessoa: 3, Pessoa: "Maria", IDUsuarioLancamento: 7, ValorTotal: decimal.NewFromInt(10)}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("domain.Receivable")).Return(nil, assert.AnError).Once()

	got, err := suite.service.Create(ctx, req)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestFindAll_CompilesFilter() {
	ctx := context.Background()
	data := []domain.Receivable{{ID: 1}, {ID: 2}}

	suite.mockRepo.On("FindAll", ctx, mock.MatchedBy(func(q portsrepo.ListQuery) bool {
		preds := q.Where.Predicates()
		return q.Page == 0 && q.Size == 10 && len(preds) == 1 &&
			preds[0].Column == "idPessoa" && preds[0].Kind == filtering.KindNumber
	})).Return(data, int64(42), nil).Once()

	got, count, err := suite.service.FindAll(ctx, 0, 10, filtering.Order{}, []filtering.Criterion{{Column: "idPessoa", Value: float64(3)}})

	suite.Require().NoError(err)
	suite.Equal(data, got)
	suite.Equal(int64(42), count)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestFindOne_Success() {
	ctx := context.Background()
	expected := &domain.Receivable{ID: 5, Pessoa: "João"}

	suite.mockRepo.On("FindByID", ctx, int64(5)).Return(expected, nil).Once()

	got, err := suite.service.FindOne(ctx, 5)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestFindOne_NotFoundIsNil() {
	ctx := context.Background()

	suite.mockRepo.On("FindByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.FindOne(ctx, 99)

	suite.Require().NoError(err)
	suite.Nil(got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestUpdate_IDMismatchNeverWrites() {
	ctx := context.Background()
	req := dto.UpdateContaReceberRequest{ID: 2, IDPessoa: 3, Pessoa: "Maria", IDUsuarioLancamento: 7, ValorTotal: decimal.NewFromInt(10)}

	got, err := suite.service.Update(ctx, 1, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIDMismatch)
	suite.Nil(got)
	suite.mockRepo.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestUpdate_Success() {
	ctx := context.Background()
	req := dto.UpdateContaReceberRequest{ID: 2, IDPessoa: 3, Pessoa: "Maria", IDUsuarioLancamento: 7, ValorTotal: decimal.NewFromInt(10), Pago: true}
	saved := &domain.Receivable{ID: 2, IDPessoa: 3, Pessoa: "Maria", IDUsuarioLancamento: 7, ValorTotal: req.ValorTotal, Pago: true}

	suite.mockRepo.On("Save", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.ID == 2 && r.Pago
	})).Return(saved, nil).Once()

	got, err := suite.service.Update(ctx, 2, req)

	suite.Require().NoError(err)
	suite.Equal(saved, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestDelete_ReportsRemoval() {
	ctx := context.Background()

	suite.mockRepo.On("Delete", ctx, int64(1)).Return(true, nil).Once()
	suite.mockRepo.On("Delete", ctx, int64(2)).Return(false, nil).Once()

	removed, err := suite.service.Delete(ctx, 1)
	suite.Require().NoError(err)
	suite.True(removed)

	removed, err = suite.service.Delete(ctx, 2)
	suite.Require().NoError(err)
	suite.False(removed)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestExport_Success() {
	ctx := context.Background()
	reportPath := suite.writeTempReport("conteudo-planilha")
	records := []domain.Receivable{
		{ID: 1, IDPessoa: 3, Pessoa: "Maria", ValorTotal: decimal.RequireFromString("150.5"), Pago: true},
		{ID: 2, IDPessoa: 12, Pessoa: "João", ValorTotal: decimal.NewFromInt(80), Pago: false},
	}

	suite.mockRepo.On("FindPage", ctx, mock.MatchedBy(func(q portsrepo.ListQuery) bool {
		return q.Page == 0 && q.Size == 100
	})).Return(records, nil).Once()

	suite.mockRenderer.On("Render", ctx, "Listagem de Contas a Receber", int64(7), mock.MatchedBy(func(table portssvc.ReportTable) bool {
		if len(table.Rows) != 2 {
			return false
		}
		first := table.Rows[0]
		return first[0] == "1" && first[1] == "000003 - Maria" && first[2] == "150.50" && first[3] == "Sim"
	})).Return(reportPath, nil).Once()

	suite.mockUsers.On("FindByID", ctx, int64(7)).Return(domain.User{ID: 7, Nome: "Ana", Email: "ana@exemplo.com"}, nil).Once()

	wantBase64 := base64.StdEncoding.EncodeToString([]byte("conteudo-planilha"))
	suite.mockMail.On("Publish", ctx, mock.MatchedBy(func(msg dto.EnviarEmail) bool {
		return msg.To == "ana@exemplo.com" &&
			msg.Subject == "Exportação de Relatório" &&
			msg.Context.Name == "Ana" &&
			len(msg.Attachments) == 1 &&
			msg.Attachments[0].Filename == filepath.Base(reportPath) &&
			msg.Attachments[0].Base64 == wantBase64
	})).Return(nil).Once()

	ok, err := suite.service.Export(ctx, 7, filtering.Order{}, nil)

	suite.Require().NoError(err)
	suite.True(ok)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRenderer.AssertExpectations(suite.T())
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockMail.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestExport_WalksAllPages() {
	ctx := context.Background()
	reportPath := suite.writeTempReport("x")

	makePage := func(start, n int) []domain.Receivable {
		page := make([]domain.Receivable, 0, n)
		for i := 0; i < n; i++ {
			page = append(page, domain.Receivable{
				ID:         int64(start + i),
				IDPessoa:   1,
				Pessoa:     fmt.Sprintf("Pessoa %d", start+i),
				ValorTotal: decimal.NewFromInt(10),
			})
		}
		return page
	}
	pageMatcher := func(page int) any {
		return mock.MatchedBy(func(q portsrepo.ListQuery) bool {
			return q.Page == page && q.Size == 100
		})
	}

	suite.mockRepo.On("FindPage", ctx, pageMatcher(0)).Return(makePage(0, 100), nil).Once()
	suite.mockRepo.On("FindPage", ctx, pageMatcher(1)).Return(makePage(100, 100), nil).Once()
	suite.mockRepo.On("FindPage", ctx, pageMatcher(2)).Return(makePage(200, 50), nil).Once()

	suite.mockRenderer.On("Render", ctx, mock.Anything, int64(7), mock.MatchedBy(func(table portssvc.ReportTable) bool {
		return len(table.Rows) == 250 && table.Rows[0][0] == "0" && table.Rows[249][0] == "249"
	})).Return(reportPath, nil).Once()
	suite.mockUsers.On("FindByID", ctx, int64(7)).Return(domain.User{ID: 7, Nome: "Ana", Email: "ana@exemplo.com"}, nil).Once()
	suite.mockMail.On("Publish", ctx, mock.Anything).Return(nil).Once()

	ok, err := suite.service.Export(ctx, 7, filtering.Order{}, nil)

	suite.Require().NoError(err)
	suite.True(ok)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRenderer.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestExport_RendererFailureIsExportFailed() {
	ctx := context.Background()

	suite.mockRepo.On("FindPage", ctx, mock.Anything).Return([]domain.Receivable{}, nil).Once()
	suite.mockRenderer.On("Render", ctx, mock.Anything, int64(7), mock.Anything).Return("", assert.AnError).Once()

	ok, err := suite.service.Export(ctx, 7, filtering.Order{}, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExportFailed)
	suite.False(ok)
	suite.mockMail.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestExport_UnknownUserPropagatesSentinel() {
	ctx := context.Background()
	reportPath := suite.writeTempReport("x")

	suite.mockRepo.On("FindPage", ctx, mock.Anything).Return([]domain.Receivable{}, nil).Once()
	suite.mockRenderer.On("Render", ctx, mock.Anything, int64(99), mock.Anything).Return(reportPath, nil).Once()
	suite.mockUsers.On("FindByID", ctx, int64(99)).Return(domain.User{ID: 0}, nil).Once()

	ok, err := suite.service.Export(ctx, 99, filtering.Order{}, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUserNotIdentified)
	suite.NotErrorIs(err, apperrors.ErrExportFailed)
	suite.False(ok)
	suite.mockMail.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestExport_ResolverFailureIsExportFailed() {
	ctx := context.Background()
	reportPath := suite.writeTempReport("x")

	suite.mockRepo.On("FindPage", ctx, mock.Anything).Return([]domain.Receivable{}, nil).Once()
	suite.mockRenderer.On("Render", ctx, mock.Anything, int64(7), mock.Anything).Return(reportPath, nil).Once()
	suite.mockUsers.On("FindByID", ctx, int64(7)).Return(domain.User{}, apperrors.ErrRemoteCommunication).Once()

	ok, err := suite.service.Export(ctx, 7, filtering.Order{}, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExportFailed)
	suite.False(ok)
	suite.mockMail.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestExport_ArchiverFailureIsBestEffort() {
	ctx := context.Background()
	reportPath := suite.writeTempReport("x")
	mockArchiver := new(MockReportArchiver)
	service := services.NewReceivableService(suite.mockRepo, suite.mockRenderer, suite.mockUsers, suite.mockMail, mockArchiver)

	suite.mockRepo.On("FindPage", ctx, mock.Anything).Return([]domain.Receivable{}, nil).Once()
	suite.mockRenderer.On("Render", ctx, mock.Anything, int64(7), mock.Anything).Return(reportPath, nil).Once()
	mockArchiver.On("Archive", ctx, reportPath).Return(assert.AnError).Once()
	suite.mockUsers.On("FindByID", ctx, int64(7)).Return(domain.User{ID: 7, Nome: "Ana", Email: "ana@exemplo.com"}, nil).Once()
	suite.mockMail.On("Publish", ctx, mock.Anything).Return(nil).Once()

	ok, err := service.Export(ctx, 7, filtering.Order{}, nil)

	suite.Require().NoError(err)
	suite.True(ok)
	mockArchiver.AssertExpectations(suite.T())
	suite.mockMail.AssertExpectations(suite.T())
}

func TestReceivableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
