package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/infrastructure/metrics"
	"pei_compras/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline stages as reported in PipelineResult.Stage.
const (
	StageExtract   = "extract"
	StagePersist   = "persist"
	StageDiscover  = "discover"
	StageDispatch  = "dispatch"
	StageCompleted = "completed"
)

const errNoRFQSent = "no RFQ could be sent"

// PipelineResult is the single outcome of a run. Unexpected marks failures that
// are not business rejections (storage errors, recovered panics).
type PipelineResult struct {
	Success    bool                        `json:"success"`
	Stage      string                      `json:"stage"`
	RequestID  string                      `json:"request_id,omitempty"`
	Error      string                      `json:"error,omitempty"`
	Unexpected bool                        `json:"-"`
	Extraction *entities.StructuredRequest `json:"extraction,omitempty"`
	Discovery  *AggregationResult          `json:"discovery,omitempty"`
	Dispatch   *DispatchReport             `json:"dispatch,omitempty"`
}

// StatusView is the read-only progress view of a purchase request.
type StatusView struct {
	RequestID     string                         `json:"request_id"`
	Status        entities.PurchaseRequestStatus `json:"status"`
	Urgency       entities.Urgency               `json:"urgency"`
	Priority      int                            `json:"priority"`
	Category      entities.Category              `json:"category"`
	FailureReason string                         `json:"failure_reason,omitempty"`
	FailedStage   string                         `json:"failed_stage,omitempty"`
	RFQsTotal     int                            `json:"rfqs_total"`
	RFQsSent      int                            `json:"rfqs_sent"`
	RFQsResponded int                            `json:"rfqs_responded"`
	RFQs          []entities.RFQ                 `json:"rfqs"`
	CreatedAt     time.Time                      `json:"created_at"`
	UpdatedAt     time.Time                      `json:"updated_at"`
}

// IPipelineUseCase runs a purchase request end to end.
//
// Run never returns an error: every failure is folded into the PipelineResult.

type IPipelineUseCase interface {
	Run(ctx context.Context, text string, origin entities.Origin) PipelineResult
	Status(ctx context.Context, requestID string) (StatusView, error)
}

// PipelineConfig names the requester recorded on automatically created requests.
type PipelineConfig struct {
	RequesterName    string
	RequesterContact string
}

type PipelineUseCase struct {
	extraction IExtractionUseCase
	discovery  IDiscoveryUseCase
	rfq        IRFQUseCase
	requests   interfaces.IPurchaseRequestRepository
	rfqs       interfaces.IRFQRepository
	cfg        PipelineConfig
	now        Clock
	log        *zap.Logger
}

var _ IPipelineUseCase = (*PipelineUseCase)(nil)

func NewPipelineUseCase(
	extraction IExtractionUseCase,
	discovery IDiscoveryUseCase,
	rfq IRFQUseCase,
	requests interfaces.IPurchaseRequestRepository,
	rfqs interfaces.IRFQRepository,
	cfg PipelineConfig,
	now Clock,
	logger *zap.Logger,
) *PipelineUseCase {
	if cfg.RequesterName == "" {
		cfg.RequesterName = "Sistema"
	}
	if cfg.RequesterContact == "" {
		cfg.RequesterContact = "sistema@pei.com"
	}
	if now == nil {
		now = systemClock
	}
	return &PipelineUseCase{
		extraction: extraction,
		discovery:  discovery,
		rfq:        rfq,
		requests:   requests,
		rfqs:       rfqs,
		cfg:        cfg,
		now:        now,
		log:        nopIfNil(logger).Named("pipeline"),
	}
}

// pipelineRun carries the state a failure needs to unwind.
type pipelineRun struct {
	stage     string
	requestID string
	status    entities.PurchaseRequestStatus
}

func (u *PipelineUseCase) Run(ctx context.Context, text string, origin entities.Origin) (result PipelineResult) {
	// stages always run to their own completion
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	run := &pipelineRun{stage: StageExtract}

	defer func() {
		if rec := recover(); rec != nil {
			u.log.Error("pipeline panicked", zap.String("stage", run.stage), zap.String("request_id", run.requestID), zap.Any("panic", rec))
			msg := fmt.Sprintf("unexpected error: %v", rec)
			u.fail(ctx, run, msg)
			result.Success = false
			result.Stage = run.stage
			result.RequestID = run.requestID
			result.Error = msg
			result.Unexpected = true
		}
		metrics.PipelineRunsTotal.WithLabelValues(result.Stage, metrics.OutcomeOf(result.Success)).Inc()
		metrics.PipelineDuration.WithLabelValues(metrics.OutcomeOf(result.Success)).Observe(time.Since(start).Seconds())
	}()

	u.log.Info("pipeline start", zap.String("origin", string(origin)), zap.Int("text_len", len(text)))

	extracted, err := u.extraction.Extract(ctx, text, origin)
	if err != nil {
		u.log.Warn("pipeline extract failed", zap.Error(err))
		return PipelineResult{Stage: StageExtract, Error: err.Error()}
	}
	result.Extraction = &extracted
	if ok, reason := u.extraction.Validate(extracted); !ok {
		u.log.Warn("pipeline validation failed", zap.String("reason", reason))
		result.Stage = StageExtract
		result.Error = fmt.Sprintf("%v: %s", ErrValidation, reason)
		return result
	}

	run.stage = StagePersist
	pr, err := u.requests.Create(ctx, u.newPurchaseRequest(text, origin, extracted))
	if err != nil {
		u.log.Error("pipeline create request failed", zap.Error(err))
		result.Stage = StagePersist
		result.Error = err.Error()
		result.Unexpected = true
		return result
	}
	run.requestID = pr.ID
	run.status = pr.Status
	result.RequestID = pr.ID
	log := u.log.With(zap.String("request_id", pr.ID))

	if err := u.transition(ctx, run, entities.PurchaseRequestStatusEnProceso, "", ""); err != nil {
		log.Error("pipeline transition to en_proceso failed", zap.Error(err))
		u.fail(ctx, run, err.Error())
		result.Stage = StagePersist
		result.Error = err.Error()
		result.Unexpected = true
		return result
	}

	run.stage = StageDiscover
	discovery, err := u.discovery.Discover(ctx, extracted.Items, true)
	result.Discovery = &discovery
	if err != nil || len(discovery.Ranked) == 0 {
		msg := discoveryFailure(err, discovery)
		log.Warn("pipeline discover failed", zap.String("reason", msg))
		u.fail(ctx, run, msg)
		result.Stage = StageDiscover
		result.Error = msg
		return result
	}

	run.stage = StageDispatch
	report := u.rfq.DispatchMany(ctx, pr.ID, discovery.Ranked, extracted.Items, extracted.Urgency)
	result.Dispatch = &report
	if report.Succeeded == 0 {
		log.Warn("pipeline dispatch failed", zap.Int("total", report.Total))
		u.fail(ctx, run, errNoRFQSent)
		result.Stage = StageDispatch
		result.Error = errNoRFQSent
		return result
	}

	if err := u.transition(ctx, run, entities.PurchaseRequestStatusRFQsEnviados, "", ""); err != nil {
		log.Error("pipeline transition to rfqs_enviados failed", zap.Error(err))
		u.fail(ctx, run, err.Error())
		result.Stage = StageDispatch
		result.Error = err.Error()
		result.Unexpected = true
		return result
	}

	run.stage = StageCompleted
	result.Success = true
	result.Stage = StageCompleted
	log.Info("pipeline completed", zap.Int("rfqs_sent", report.Succeeded), zap.Int("rfqs_failed", report.Failed))
	return result
}

func discoveryFailure(err error, res AggregationResult) string {
	switch {
	case err != nil:
		return err.Error()
	case res.RankingError != "":
		return fmt.Sprintf("%v: ranking failed: %s", ErrDiscovery, res.RankingError)
	default:
		return fmt.Sprintf("%v: no suppliers found", ErrDiscovery)
	}
}

func (u *PipelineUseCase) newPurchaseRequest(text string, origin entities.Origin, sr entities.StructuredRequest) entities.PurchaseRequest {
	now := u.now()
	notes := fmt.Sprintf("Origen: %s. Productos detectados: %d", origin.Label(), len(sr.Items))
	if sr.Notes != "" {
		notes += ". " + sr.Notes
	}
	var qty *int
	if len(sr.Items) == 1 {
		q := sr.Items[0].Quantity
		qty = &q
	}
	return entities.PurchaseRequest{
		ID:               uuid.NewString(),
		RequesterName:    u.cfg.RequesterName,
		RequesterContact: u.cfg.RequesterContact,
		Description:      describeRequest(text, sr.Items),
		Category:         sr.Items[0].Category,
		Quantity:         qty,
		Budget:           sr.EstimatedBudget,
		Urgency:          sr.Urgency,
		Priority:         sr.Urgency.Priority(),
		Status:           entities.PurchaseRequestStatusPendiente,
		Origin:           origin,
		Items:            sr.Items,
		InternalNotes:    notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func describeRequest(text string, items []entities.LineItem) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n\nProductos:")
	for _, it := range items {
		fmt.Fprintf(&b, "\n- %s (Cant: %d)", it.Name, it.Quantity)
	}
	return b.String()
}

func (u *PipelineUseCase) transition(ctx context.Context, run *pipelineRun, to entities.PurchaseRequestStatus, reason, stage string) error {
	if !run.status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, run.status, to)
	}
	updated, err := u.requests.TransitionStatus(ctx, run.requestID, run.status, to, reason, stage)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return fmt.Errorf("%w: %s -> %s for %s", ErrInvalidTransition, run.status, to, run.requestID)
	}
	run.status = updated.Status
	return nil
}

// fail moves the request to cancelada, keeping the reason and stage. It is a
// no-op before the request exists.
func (u *PipelineUseCase) fail(ctx context.Context, run *pipelineRun, reason string) {
	if run.requestID == "" || run.status.IsTerminal() {
		return
	}
	if err := u.transition(ctx, run, entities.PurchaseRequestStatusCancelada, reason, run.stage); err != nil {
		u.log.Error("pipeline failure transition failed", zap.String("request_id", run.requestID), zap.Error(err))
	}
}

func (u *PipelineUseCase) Status(ctx context.Context, requestID string) (StatusView, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return StatusView{}, ErrInvalidRequestID
	}
	pr, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return StatusView{}, err
	}
	if pr.ID == "" {
		return StatusView{}, ErrNotFound
	}
	rfqs, err := u.rfqs.ListByPurchaseRequestID(ctx, pr.ID)
	if err != nil {
		return StatusView{}, err
	}

	view := StatusView{
		RequestID:     pr.ID,
		Status:        pr.Status,
		Urgency:       pr.Urgency,
		Priority:      pr.Priority,
		Category:      pr.Category,
		FailureReason: pr.FailureReason,
		FailedStage:   pr.FailedStage,
		RFQsTotal:     len(rfqs),
		RFQs:          rfqs,
		CreatedAt:     pr.CreatedAt,
		UpdatedAt:     pr.UpdatedAt,
	}
	for _, r := range rfqs {
		if r.Status.CountsAsSent() {
			view.RFQsSent++
		}
		if r.Status == entities.RFQStatusRespondido {
			view.RFQsResponded++
		}
	}
	return view, nil
}

// IsBusinessFailure reports whether a pipeline error is a rejection of the
// input rather than a fault of the service.
func IsBusinessFailure(res PipelineResult) bool {
	return !res.Success && !res.Unexpected
}
