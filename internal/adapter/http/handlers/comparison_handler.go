package handlers

import (
	"errors"
	"net/http"

	response "pei_compras/internal/adapter/http/dto/response"
	"pei_compras/internal/usecase"
	"pei_compras/pkg"

	"github.com/gin-gonic/gin"
)

type ComparisonHandler struct {
	usecase usecase.IPriceComparisonUseCase
}

func NewComparisonHandler(uc usecase.IPriceComparisonUseCase) *ComparisonHandler {
	return &ComparisonHandler{usecase: uc}
}

// Compare recommends quoting, buying directly or both for a stored request.
//
// @Summary      Compare supplier sources for a purchase request
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Purchase request id"
// @Success      200  {object}  response.PriceComparisonResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /requests/{id}/price-comparison [post]
func (h *ComparisonHandler) Compare(c *gin.Context) {
	report, err := h.usecase.CompareForRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapComparisonError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPriceComparison(report))
}

func mapComparisonError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Purchase request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDiscovery):
		return pkg.NewDomainError("DISCOVERY_FAILED", "No supplier sources available to compare", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrComparison), errors.Is(err, usecase.ErrComparisonParse):
		return pkg.NewDomainError("COMPARISON_FAILED", "Price comparison could not be produced", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
