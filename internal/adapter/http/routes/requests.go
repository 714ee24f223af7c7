package routes

import (
	"pei_compras/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests = "/requests"
	PathRFQs     = "/rfqs"
)

func addRequestRoutes(
	rg *gin.RouterGroup,
	pipelineHandler *handlers.PipelineHandler,
	rfqHandler *handlers.RFQHandler,
	comparisonHandler *handlers.ComparisonHandler,
) {
	requests := rg.Group(PathRequests)
	{
		requests.POST("/process-complete", pipelineHandler.ProcessComplete)
		requests.GET("/:id/status", pipelineHandler.GetStatus)
		requests.POST("/:id/price-comparison", comparisonHandler.Compare)

		// Draft review: list pending drafts and draft for a registry supplier.
		requests.GET("/:id/rfqs/drafts", rfqHandler.ListDrafts)
		requests.POST("/:id/rfqs/draft", rfqHandler.CreateDraft)
	}
}

func addRFQRoutes(rg *gin.RouterGroup, rfqHandler *handlers.RFQHandler) {
	rfqs := rg.Group(PathRFQs)
	{
		rfqs.POST("/:id/send", rfqHandler.Send)
	}
}
