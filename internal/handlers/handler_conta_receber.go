package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/codelab/api-financeiro/internal/apperrors"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/middleware"

	"github.com/gin-gonic/gin"
)

// contaReceberHandler handles HTTP requests for receivables.
type contaReceberHandler struct {
	service portssvc.ReceivableSvcFacade
}

func newContaReceberHandler(s portssvc.ReceivableSvcFacade) *contaReceberHandler {
	return &contaReceberHandler{service: s}
}

// RegisterContaReceberRoutes registers all receivable routes.
func RegisterContaReceberRoutes(rg *gin.RouterGroup, service portssvc.ReceivableSvcFacade) {
	h := newContaReceberHandler(service)

	contas := rg.Group("/conta-receber")
	{
		contas.POST("", h.create)
		contas.GET("", h.findAll)
		contas.GET("/:id", h.findOne)
		contas.PATCH("/:id", h.update)
		contas.DELETE("/:id", h.delete)
		// Export lives on the POST tree so it cannot collide with the :id
		// wildcard of the read routes.
		contas.POST("/export", h.export)
	}
}

// create godoc
// @Summary Create a receivable
// @Description Persists a new receivable; id and dataHora are assigned by the server
// @Tags conta-receber
// @Accept json
// @Produce json
// @Param conta body dto.CreateContaReceberRequest true "Receivable draft"
// @Success 201 {object} dto.Response[domain.Receivable]
// @Failure 400 {object} dto.Response[any] "Invalid input"
// @Router /conta-receber [post]
func (h *contaReceberHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateContaReceberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind create receivable request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create receivable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao salvar."))
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(created, dto.MsgSalvoSucesso))
}

// findAll godoc
// @Summary List receivables
// @Description Returns one page of receivables and the total matching count
// @Tags conta-receber
// @Produce json
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Param order query string false "Order descriptor, e.g. {\"column\":\"id\",\"sort\":\"asc\"}"
// @Param filter query string false "Filter criterion or array of criteria"
// @Success 200 {object} dto.Response[[]domain.Receivable]
// @Failure 400 {object} dto.Response[any] "Invalid pagination, order or filter"
// @Router /conta-receber [get]
func (h *contaReceberHandler) findAll(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	params, order, filter, ok := bindFindAll(c, logger)
	if !ok {
		return
	}

	data, count, err := h.service.FindAll(c.Request.Context(), params.Page, params.Size, order, filter)
	if err != nil {
		respondListError(c, logger, err, "Failed to list receivables")
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(data, count))
}

// findOne godoc
// @Summary Get a receivable by id
// @Tags conta-receber
// @Produce json
// @Param id path int true "Receivable id"
// @Success 200 {object} dto.Response[domain.Receivable] "data is null when nothing matches"
// @Router /conta-receber/{id} [get]
func (h *contaReceberHandler) findOne(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	data, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to find receivable", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao consultar."))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(data, ""))
}

// update godoc
// @Summary Update a receivable
// @Description Full-record replacement; the body id must match the path id
// @Tags conta-receber
// @Accept json
// @Produce json
// @Param id path int true "Receivable id"
// @Param conta body dto.UpdateContaReceberRequest true "Replacement record"
// @Success 200 {object} dto.Response[domain.Receivable]
// @Failure 406 {object} dto.Response[any] "Path and body ids differ"
// @Router /conta-receber/{id} [patch]
func (h *contaReceberHandler) update(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateContaReceberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind update receivable request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, err.Error()))
		return
	}

	saved, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrIDMismatch) {
			c.JSON(http.StatusNotAcceptable, dto.NewResponse[any](nil, dto.MsgIDsDiferentes))
			return
		}
		logger.Error("Failed to update receivable", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao atualizar."))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(saved, dto.MsgAtualizadoSucesso))
}

// delete godoc
// @Summary Delete a receivable
// @Description Hard delete; data is false when nothing matched, which is not an error
// @Tags conta-receber
// @Produce json
// @Param id path int true "Receivable id"
// @Success 200 {object} dto.Response[bool]
// @Router /conta-receber/{id} [delete]
func (h *contaReceberHandler) delete(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to delete receivable", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewResponse[any](nil, "Falha ao excluir."))
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(removed, dto.MsgDesativadoSucesso))
}

// export godoc
// @Summary Export receivables
// @Description Renders the entire filtered/ordered dataset and mails it to the requesting user
// @Tags conta-receber
// @Accept json
// @Produce json
// @Param request body dto.ExportRequest true "Requesting user, order and optional filter"
// @Success 200 {object} dto.Response[bool]
// @Failure 406 {object} dto.Response[any] "Requesting user not identified"
// @Failure 500 {object} dto.Response[any] "Export failed"
// @Router /conta-receber/export [post]
func (h *contaReceberHandler) export(c *gin.Context) {
	exportHandler(c, h.service.Export)
}

// pathID parses the :id path parameter, answering 400 itself on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewResponse[any](nil, "Identificador inválido."))
		return 0, false
	}
	return id, true
}
