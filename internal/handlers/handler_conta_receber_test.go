package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/core/domain"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/handlers"
	"github.com/codelab/api-financeiro/internal/utils/filtering"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReceivableSvcFacade ---
type MockReceivableService struct {
	mock.Mock
}

func (m *MockReceivableService) Create(ctx context.Context, req dto.CreateContaReceberRequest) (*domain.Receivable, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableService) FindAll(ctx context.Context, page, size int, order filtering.Order, filter []filtering.Criterion) ([]domain.Receivable, int64, error) {
	args := m.Called(ctx, page, size, order, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Receivable), args.Get(1).(int64), args.Error(2)
}

func (m *MockReceivableService) FindOne(ctx context.Context, id int64) (*domain.Receivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableService) Update(ctx context.Context, id int64, req dto.UpdateContaReceberRequest) (*domain.Receivable, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableService) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceivableService) Export(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) (bool, error) {
	args := m.Called(ctx, idUsuario, order, filter)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.ReceivableSvcFacade = (*MockReceivableService)(nil)

// --- Test Suite ---
type ContaReceberHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReceivableService
}

func (suite *ContaReceberHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()
	suite.router = gin.New()
	suite.mockService = new(MockReceivableService)

	api := suite.router.Group("/api/v1/financeiro")
	handlers.RegisterContaReceberRoutes(api, suite.mockService)
}

func (suite *ContaReceberHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ContaReceberHandlerTestSuite) TestCreate_Success() {
	req := dto.CreateContaReceberRequest{
		IDPessoa:            3,
		Pessoa:              "Maria",
		IDUsuarioLancamento: 7,
		ValorTotal:          decimal.RequireFromString("150.50"),
	}
	created := &domain.Receivable{ID: 1, IDPessoa: 3, Pessoa: "Maria", IDUsuarioLancamento: 7, ValorTotal: req.ValorTotal}

	suite.mockService.On("Create", mock.Anything, mock.MatchedBy(func(r dto.CreateContaReceberRequest) bool {
		return r.IDPessoa == 3 && r.Pessoa == "Maria"
	})).Return(created, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/financeiro/conta-receber", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.Response[domain.Receivable]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.MsgSalvoSucesso, resp.Message)
	suite.Equal(int64(1), resp.Data.ID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestCreate_InvalidBodyIsBadRequest() {
	w := suite.perform(http.MethodPost, "/api/v1/financeiro/conta-receber", map[string]any{"pessoa": "Maria"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ContaReceberHandlerTestSuite) TestFindAll_ParsesOrderAndFilter() {
	data := []domain.Receivable{{ID: 1}}

	suite.mockService.On("FindAll", mock.Anything, 2, 5,
		filtering.Order{Column: "dataHora", Sort: "desc"},
		mock.MatchedBy(func(filter []filtering.Criterion) bool {
			return len(filter) == 1 && filter[0].Column == "pessoa" && filter[0].Value == "Mar"
		}),
	).Return(data, int64(11), nil).Once()

	w := suite.perform(http.MethodGet,
		`/api/v1/financeiro/conta-receber?page=2&size=5&order={"column":"dataHora","sort":"DESC"}&filter={"column":"pessoa","value":"Mar"}`, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.Response[[]domain.Receivable]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Count)
	suite.Equal(int64(11), *resp.Count)
	suite.Len(resp.Data, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestFindOne_MissIsNullData() {
	suite.mockService.On("FindOne", mock.Anything, int64(99)).Return(nil, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/financeiro/conta-receber/99", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("null", string(resp["data"]))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestFindOne_BadIDIsBadRequest() {
	w := suite.perform(http.MethodGet, "/api/v1/financeiro/conta-receber/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "FindOne", mock.Anything, mock.Anything)
}

func (suite *ContaReceberHandlerTestSuite) TestUpdate_IDMismatchIsNotAcceptable() {
	req := dto.UpdateContaReceberRequest{
		ID:                  2,
		IDPessoa:            3,
		Pessoa:              "Maria",
		IDUsuarioLancamento: 7,
		ValorTotal:          decimal.NewFromInt(10),
	}

	suite.mockService.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil, apperrors.ErrIDMismatch).Once()

	w := suite.perform(http.MethodPatch, "/api/v1/financeiro/conta-receber/1", req)

	suite.Equal(http.StatusNotAcceptable, w.Code)
	var resp dto.Response[any]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.MsgIDsDiferentes, resp.Message)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestDelete_ReportsMissAsFalse() {
	suite.mockService.On("Delete", mock.Anything, int64(4)).Return(false, nil).Once()

	w := suite.perform(http.MethodDelete, "/api/v1/financeiro/conta-receber/4", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.Response[bool]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Data)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestExport_Accepted() {
	suite.mockService.On("Export", mock.Anything, int64(7),
		filtering.Order{Column: "id", Sort: "asc"}, mock.Anything,
	).Return(true, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/financeiro/conta-receber/export", dto.ExportRequest{
		IDUsuario: 7,
		Order:     filtering.Order{Column: "id", Sort: "ASC"},
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.Response[bool]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Data)
	suite.Equal(dto.MsgIniciadaGeracao, resp.Message)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestExport_UnknownUserIsNotAcceptable() {
	suite.mockService.On("Export", mock.Anything, int64(99), mock.Anything, mock.Anything).
		Return(false, apperrors.ErrUserNotIdentified).Once()

	w := suite.perform(http.MethodPost, "/api/v1/financeiro/conta-receber/export", dto.ExportRequest{
		IDUsuario: 99,
		Order:     filtering.Order{Column: "id", Sort: "asc"},
	})

	suite.Equal(http.StatusNotAcceptable, w.Code)
	var resp dto.Response[any]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.MsgUsuarioNaoIdentificado, resp.Message)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestExport_FailureIsInternalError() {
	suite.mockService.On("Export", mock.Anything, int64(7), mock.Anything, mock.Anything).
		Return(false, apperrors.ErrExportFailed).Once()

	w := suite.perform(http.MethodPost, "/api/v1/financeiro/conta-receber/export", dto.ExportRequest{
		IDUsuario: 7,
		Order:     filtering.Order{Column: "id", Sort: "asc"},
	})

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.Response[any]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.MsgErroExportarRelatorio, resp.Message)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ContaReceberHandlerTestSuite) TestExport_InvalidSortIsBadRequest() {
	w := suite.perform(http.MethodPost, "/api/v1/financeiro/conta-receber/export", dto.ExportRequest{
		IDUsuario: 7,
		Order:     filtering.Order{Column: "id", Sort: "sideways"},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContaReceberHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ContaReceberHandlerTestSuite))
}
