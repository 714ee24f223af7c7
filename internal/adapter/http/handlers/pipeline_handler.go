package handlers

import (
	"errors"
	"net/http"

	request "pei_compras/internal/adapter/http/dto/request"
	response "pei_compras/internal/adapter/http/dto/response"
	"pei_compras/internal/usecase"
	"pei_compras/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidProcessPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST_INPUT", "Invalid purchase request payload", http.StatusBadRequest)
	errInvalidOrigin         = pkg.NewDomainErrorSimple("INVALID_ORIGIN", "Origin must be one of form, messaging, email, api", http.StatusBadRequest)
)

// PipelineHandler exposes the end to end purchase request pipeline.

type PipelineHandler struct {
	usecase usecase.IPipelineUseCase
	log     *zap.Logger
}

func NewPipelineHandler(uc usecase.IPipelineUseCase, logger *zap.Logger) *PipelineHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineHandler{usecase: uc, log: logger.Named("http")}
}

// ProcessComplete runs extraction, discovery and dispatch for one request text.
//
// @Summary      Process a purchase request end to end
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      request.ProcessRequest  true  "Free text request"
// @Success      200   {object}  response.ProcessResponse
// @Failure      400   {object}  response.ProcessFailureResponse
// @Failure      500   {object}  pkg.HTTPError
// @Router       /requests/process-complete [post]
func (h *PipelineHandler) ProcessComplete(c *gin.Context) {
	var payload request.ProcessRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProcessPayload.HTTPStatus, errInvalidProcessPayload.ToHTTPError())
		return
	}

	origin, err := payload.ResolveOrigin()
	if err != nil {
		c.JSON(errInvalidOrigin.HTTPStatus, errInvalidOrigin.ToHTTPError())
		return
	}

	res := h.usecase.Run(c.Request.Context(), payload.ResolveText(), origin)
	switch {
	case res.Success:
		h.log.Info("purchase request processed", zap.String("request_id", res.RequestID))
		c.JSON(http.StatusOK, response.FromPipelineResult(res))
	case usecase.IsBusinessFailure(res):
		h.log.Warn("purchase request rejected", zap.String("stage", res.Stage), zap.String("error", res.Error))
		c.JSON(http.StatusBadRequest, response.FromPipelineFailure(res))
	default:
		h.log.Error("purchase request failed unexpectedly", zap.String("stage", res.Stage), zap.String("error", res.Error))
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", errors.New(res.Error), http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}
}

// GetStatus returns the progress of a purchase request.
//
// @Summary      Purchase request status
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Purchase request id"
// @Success      200  {object}  response.StatusResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /requests/{id}/status [get]
func (h *PipelineHandler) GetStatus(c *gin.Context) {
	view, err := h.usecase.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPipelineError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromStatusView(view))
}

func mapPipelineError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrEmptyInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Purchase request not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
