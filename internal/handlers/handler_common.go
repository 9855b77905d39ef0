package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/middleware"
	"github.com/codelab/api-financeiro/internal/utils/filtering"

	"github.com/gin-gonic/gin"
)

// bindFindAll binds and decodes the shared list query parameters, answering
// 400 itself when they are malformed.
func bindFindAll(c *gin.Context, logger *slog.Logger) (dto.FindAllParams, filtering.Order, []filtering.Criterion, bool) {
	var params dto.FindAllParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return params, filtering.Order{}, nil, false
	}

	order, err := dto.ParseOrder(params.Order)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return params, filtering.Order{}, nil, false
	}

	filter, err := dto.ParseFilter(params.Filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return params, filtering.Order{}, nil, false
	}

	return params, order, filter, true
}

// respondListError maps a list failure onto the right status: validation
// problems (unknown filter/order column) are the client's, the rest are
// ours.
func respondListError(c *gin.Context, logger *slog.Logger, err error, logMsg string) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}
	logger.Error(logMsg, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao consultar."))
}

// exportFunc is the export operation shared by both service facades.
type exportFunc func(ctx context.Context, idUsuario int64, order filtering.Order, filter []filtering.Criterion) (bool, error)

// exportHandler binds the export request and maps the pipeline's failure
// taxonomy: user-not-identified is the caller's error, everything else
// surfaces as the single export failure.
func exportHandler(c *gin.Context, export exportFunc) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind export request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	order, err := dto.NormalizeOrder(req.Order)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	filter, err := dto.ParseFilterJSON(req.Filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	ok, err := export(c.Request.Context(), req.IDUsuario, order, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotIdentified) {
			c.JSON(http.StatusNotAcceptable, dto.NewResponse[any](nil, dto.MsgUsuarioNaoIdentificado))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, dto.MsgErroExportarRelatorio))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(ok, dto.MsgIniciadaGeracao))
}
