package handlers

import (
	"errors"
	"net/http"

	request "pei_compras/internal/adapter/http/dto/request"
	response "pei_compras/internal/adapter/http/dto/response"
	"pei_compras/internal/usecase"
	"pei_compras/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidDraftPayload = pkg.NewDomainErrorSimple("INVALID_DRAFT_INPUT", "Invalid draft payload", http.StatusBadRequest)
	errInvalidSendPayload  = pkg.NewDomainErrorSimple("INVALID_SEND_INPUT", "Invalid send payload", http.StatusBadRequest)
)

// RFQHandler handles review and sending of RFQ drafts.

type RFQHandler struct {
	usecase usecase.IRFQUseCase
}

func NewRFQHandler(uc usecase.IRFQUseCase) *RFQHandler {
	return &RFQHandler{usecase: uc}
}

// ListDrafts returns the drafts still waiting for review.
//
// @Summary      Pending RFQ drafts of a purchase request
// @Tags         rfqs
// @Produce      json
// @Param        id   path      string  true  "Purchase request id"
// @Success      200  {object}  response.DraftListResponse
// @Router       /requests/{id}/rfqs/drafts [get]
func (h *RFQHandler) ListDrafts(c *gin.Context) {
	id := c.Param("id")
	drafts, err := h.usecase.ListDrafts(c.Request.Context(), id)
	if err != nil {
		appErr := mapRFQError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDrafts(id, drafts))
}

// CreateDraft generates a draft for a registry supplier without sending it.
//
// @Summary      Draft an RFQ for a registry supplier
// @Tags         rfqs
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Purchase request id"
// @Param        body  body      request.DraftRFQRequest  true  "Supplier"
// @Success      201   {object}  response.RFQResponse
// @Failure      404   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /requests/{id}/rfqs/draft [post]
func (h *RFQHandler) CreateDraft(c *gin.Context) {
	var payload request.DraftRFQRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidDraftPayload.HTTPStatus, errInvalidDraftPayload.ToHTTPError())
		return
	}

	rfq, err := h.usecase.DraftForRequest(c.Request.Context(), c.Param("id"), payload.SupplierID)
	if err != nil {
		appErr := mapRFQError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromRFQ(rfq))
}

// Send sends an existing RFQ, optionally replacing its content first. A
// failed send keeps the draft and answers 502 with the outcome.
//
// @Summary      Send an RFQ
// @Tags         rfqs
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true   "RFQ id"
// @Param        body  body      request.SendRFQRequest  false  "Edited content"
// @Success      200   {object}  response.SendResponse
// @Failure      404   {object}  pkg.HTTPError
// @Failure      502   {object}  response.SendResponse
// @Router       /rfqs/{id}/send [post]
func (h *RFQHandler) Send(c *gin.Context) {
	var payload request.SendRFQRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidSendPayload.HTTPStatus, errInvalidSendPayload.ToHTTPError())
			return
		}
	}

	outcome, err := h.usecase.Dispatch(c.Request.Context(), c.Param("id"), payload.ResolveContent())
	if err != nil {
		appErr := mapRFQError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, response.FromDispatchOutcome(outcome))
}

func mapRFQError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrInvalidRFQID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Purchase request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRFQNotFound):
		return pkg.NewDomainErrorSimple("RFQ_NOT_FOUND", "RFQ not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSupplierNotFound):
		return pkg.NewDomainErrorSimple("SUPPLIER_NOT_FOUND", "Supplier not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrGeneration):
		return pkg.NewDomainError("RFQ_GENERATION_FAILED", "RFQ content could not be generated", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
