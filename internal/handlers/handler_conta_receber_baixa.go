package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codelab/api-financeiro/internal/apperrors"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/middleware"

	"github.com/gin-gonic/gin"
)

// contaReceberBaixaHandler handles HTTP requests for settlements.
type contaReceberBaixaHandler struct {
	service portssvc.SettlementSvcFacade
}

func newContaReceberBaixaHandler(s portssvc.SettlementSvcFacade) *contaReceberBaixaHandler {
	return &contaReceberBaixaHandler{service: s}
}

// RegisterContaReceberBaixaRoutes registers all settlement routes.
func RegisterContaReceberBaixaRoutes(rg *gin.RouterGroup, service portssvc.SettlementSvcFacade) {
	h := newContaReceberBaixaHandler(service)

	baixas := rg.Group("/conta-receber-baixa")
	{
		baixas.POST("", h.create)
		baixas.GET("", h.findAll)
		baixas.GET("/:id", h.findOne)
		baixas.PATCH("/:id", h.update)
		baixas.DELETE("/:id", h.delete)
		baixas.POST("/export", h.export)
	}
}

// create godoc
// @Summary Record a settlement
// @Description Persists a new settlement; the parent receivable's pago flag is reconciled before the response
// @Tags conta-receber-baixa
// @Accept json
// @Produce json
// @Param baixa body dto.CreateContaReceberBaixaRequest true "Settlement draft"
// @Success 201 {object} dto.Response[domain.Settlement]
// @Failure 400 {object} dto.Response[any] "Invalid input"
// @Router /conta-receber-baixa [post]
func (h *contaReceberBaixaHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateContaReceberBaixaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind create settlement request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create settlement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao salvar."))
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(created, dto.MsgSalvoSucesso))
}

// findAll godoc
// @Summary List settlements
// @Tags conta-receber-baixa
// @Produce json
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Param order query string false "Order descriptor, e.g. {\"column\":\"id\",\"sort\":\"asc\"}"
// @Param filter query string false "Filter criterion or array of criteria"
// @Success 200 {object} dto.Response[[]domain.Settlement]
// @Router /conta-receber-baixa [get]
func (h *contaReceberBaixaHandler) findAll(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	params, order, filter, ok := bindFindAll(c, logger)
	if !ok {
		return
	}

	data, count, err := h.service.FindAll(c.Request.Context(), params.Page, params.Size, order, filter)
	if err != nil {
		respondListError(c, logger, err, "Failed to list settlements")
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(data, count))
}

// findOne godoc
// @Summary Get a settlement by id
// @Tags conta-receber-baixa
// @Produce json
// @Param id path int true "Settlement id"
// @Success 200 {object} dto.Response[domain.Settlement] "data is null when nothing matches"
// @Router /conta-receber-baixa/{id} [get]
func (h *contaReceberBaixaHandler) findOne(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	data, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to find settlement", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao consultar."))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(data, ""))
}

// update godoc
// @Summary Update a settlement
// @Description Full-record replacement; the body id must match the path id. The parent receivable is reconciled before the response
// @Tags conta-receber-baixa
// @Accept json
// @Produce json
// @Param id path int true "Settlement id"
// @Param baixa body dto.UpdateContaReceberBaixaRequest true "Replacement record"
// @Success 200 {object} dto.Response[domain.Settlement]
// @Failure 406 {object} dto.Response[any] "Path and body ids differ"
// @Router /conta-receber-baixa/{id} [patch]
func (h *contaReceberBaixaHandler) update(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateContaReceberBaixaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind update settlement request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	saved, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrIDMismatch) {
			c.JSON(http.StatusNotAcceptable, dto.NewResponse[any](nil, dto.MsgIDsDiferentes))
			return
		}
		logger.Error("Failed to update settlement", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao atualizar."))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(saved, dto.MsgAtualizadoSucesso))
}

// delete godoc
// @Summary Delete a settlement
// @Tags conta-receber-baixa
// @Produce json
// @Param id path int true "Settlement id"
// @Success 200 {object} dto.Response[bool]
// @Router /conta-receber-baixa/{id} [delete]
func (h *contaReceberBaixaHandler) delete(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to delete settlement", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao excluir."))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(removed, dto.MsgDesativadoSucesso))
}

// export godoc
// @Summary Export settlements
// @Description Renders the entire filtered/ordered dataset and mails it to the requesting user
// @Tags conta-receber-baixa
// @Accept json
// @Produce json
// @Param request body dto.ExportRequest true "Requesting user, order and optional filter"
// @Success 200 {object} dto.Response[bool]
// @Failure 406 {object} dto.Response[any] "Requesting user not identified"
// @Failure 500 {object} dto.Response[any] "Export failed"
// @Router /conta-receber-baixa/export [post]
func (h *contaReceberBaixaHandler) export(c *gin.Context) {
	exportHandler(c, h.service.Export)
}
