package response

import (
	"time"

	"pei_compras/internal/usecase"
)

const processSuccessMessage = "Solicitud procesada exitosamente"

// ProcessResponse is returned when the pipeline completed.
type ProcessResponse struct {
	Message            string                 `json:"message"`
	RequestID          string                 `json:"request_id"`
	SuppliersContacted int                    `json:"suppliers_contacted"`
	RFQsSent           int                    `json:"rfqs_sent"`
	Details            usecase.PipelineResult `json:"details"`
}

// ProcessFailureResponse is returned when a stage rejected the request.
type ProcessFailureResponse struct {
	Error       string                 `json:"error"`
	FailedStage string                 `json:"failed_stage"`
	Details     usecase.PipelineResult `json:"details"`
}

func FromPipelineResult(res usecase.PipelineResult) ProcessResponse {
	out := ProcessResponse{
		Message:   processSuccessMessage,
		RequestID: res.RequestID,
		Details:   res,
	}
	if res.Dispatch != nil {
		out.SuppliersContacted = res.Dispatch.Total
		out.RFQsSent = res.Dispatch.Succeeded
	}
	return out
}

func FromPipelineFailure(res usecase.PipelineResult) ProcessFailureResponse {
	return ProcessFailureResponse{
		Error:       res.Error,
		FailedStage: res.Stage,
		Details:     res,
	}
}

// StatusResponse is the progress view of a purchase request.
type StatusResponse struct {
	RequestID     string        `json:"request_id"`
	Status        string        `json:"status"`
	Urgency       string        `json:"urgency"`
	Priority      int           `json:"priority"`
	Category      string        `json:"category"`
	FailureReason string        `json:"failure_reason,omitempty"`
	FailedStage   string        `json:"failed_stage,omitempty"`
	RFQsTotal     int           `json:"rfqs_total"`
	RFQsSent      int           `json:"rfqs_sent"`
	RFQsResponded int           `json:"rfqs_responded"`
	RFQs          []RFQResponse `json:"rfqs"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func FromStatusView(v usecase.StatusView) StatusResponse {
	return StatusResponse{
		RequestID:     v.RequestID,
		Status:        string(v.Status),
		Urgency:       string(v.Urgency),
		Priority:      v.Priority,
		Category:      string(v.Category),
		FailureReason: v.FailureReason,
		FailedStage:   v.FailedStage,
		RFQsTotal:     v.RFQsTotal,
		RFQsSent:      v.RFQsSent,
		RFQsResponded: v.RFQsResponded,
		RFQs:          FromRFQs(v.RFQs),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
