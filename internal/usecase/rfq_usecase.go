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
	"golang.org/x/sync/errgroup"
)

const (
	generationTemperature = 0.7

	generationSystemPrompt = `Eres un especialista en compras corporativas de PEI. Redactas correos formales de solicitud de cotización (RFQ) dirigidos a proveedores.

El correo debe:
- Saludar al proveedor por su nombre.
- Listar cada producto con su cantidad y especificaciones.
- Pedir precio unitario, precio total, tiempo de entrega, condiciones de pago y vigencia de la oferta.
- Indicar claramente la fecha límite de respuesta.
- Cerrar con los datos de contacto de PEI.

Escribe solo el cuerpo del correo en español, sin asunto y sin marcadores de posición.`
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func formatSpanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// DispatchOutcome is the result of sending one RFQ. A failed send is reported
// here instead of as an error.
type DispatchOutcome struct {
	RFQID         string             `json:"rfq_id,omitempty"`
	RFQNumber     string             `json:"rfq_number,omitempty"`
	SupplierName  string             `json:"supplier_name"`
	SupplierEmail string             `json:"supplier_email,omitempty"`
	Source        entities.Source    `json:"source,omitempty"`
	Items         []string           `json:"items,omitempty"`
	Success       bool               `json:"success"`
	Status        entities.RFQStatus `json:"status,omitempty"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	Error         string             `json:"error,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// DispatchReport aggregates a fan-out. Total == Succeeded + Failed == len(Results).
type DispatchReport struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []DispatchOutcome `json:"results"`
}

// IRFQUseCase generates, stores and sends quote requests.

type IRFQUseCase interface {
	Draft(ctx context.Context, requestID string, supplier entities.SupplierCandidate, items []entities.LineItem, urgency entities.Urgency) (entities.RFQ, error)
	Dispatch(ctx context.Context, rfqID, editedContent string) (DispatchOutcome, error)
	DraftAndSend(ctx context.Context, requestID string, supplier entities.SupplierCandidate, items []entities.LineItem, urgency entities.Urgency) DispatchOutcome
	DispatchMany(ctx context.Context, requestID string, ranked []entities.RankedSupplier, items []entities.LineItem, urgency entities.Urgency) DispatchReport
	DraftForRequest(ctx context.Context, requestID string, supplierID int64) (entities.RFQ, error)
	ListDrafts(ctx context.Context, requestID string) ([]entities.RFQ, error)
}

// RFQConfig holds the buyer contact data written into every RFQ.
type RFQConfig struct {
	CompanyName  string
	ContactEmail string
	ContactPhone string
	Workers      int
}

type RFQUseCase struct {
	repo     interfaces.IRFQRepository
	requests interfaces.IPurchaseRequestRepository
	registry interfaces.ISupplierRegistry
	llm      interfaces.ICompletionClient
	email    interfaces.IEmailSender
	cfg      RFQConfig
	timeouts Timeouts
	now      Clock
	log      *zap.Logger
}

var _ IRFQUseCase = (*RFQUseCase)(nil)

func NewRFQUseCase(
	repo interfaces.IRFQRepository,
	requests interfaces.IPurchaseRequestRepository,
	registry interfaces.ISupplierRegistry,
	llm interfaces.ICompletionClient,
	email interfaces.IEmailSender,
	cfg RFQConfig,
	timeouts Timeouts,
	now Clock,
	logger *zap.Logger,
) *RFQUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "PEI"
	}
	if now == nil {
		now = systemClock
	}
	return &RFQUseCase{
		repo:     repo,
		requests: requests,
		registry: registry,
		llm:      llm,
		email:    email,
		cfg:      cfg,
		timeouts: timeouts.withDefaults(),
		now:      now,
		log:      nopIfNil(logger).Named("rfq"),
	}
}

func (u *RFQUseCase) Draft(ctx context.Context, requestID string, supplier entities.SupplierCandidate, items []entities.LineItem, urgency entities.Urgency) (entities.RFQ, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.RFQ{}, ErrInvalidRequestID
	}
	if !urgency.IsValid() {
		urgency = entities.UrgencyNormal
	}
	now := u.now()
	deadline := entities.DeadlineFor(now, urgency)
	log := u.log.With(zap.String("request_id", requestID), zap.String("supplier", supplier.Name))

	start := time.Now()
	content, err := callWithTimeout(ctx, u.timeouts.LLM, func(cctx context.Context) (string, error) {
		return u.llm.Complete(cctx, interfaces.CompletionRequest{
			SystemPrompt: generationSystemPrompt,
			UserPrompt:   u.generationPrompt(supplier, items, urgency, deadline),
			Tier:         interfaces.ModelTierFull,
			Temperature:  generationTemperature,
		})
	})
	metrics.ExternalCallDuration.WithLabelValues("llm_generate", metrics.OutcomeOf(err == nil)).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("rfq generation failed", zap.Error(err))
		return entities.RFQ{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		log.Error("rfq generation returned empty content")
		return entities.RFQ{}, fmt.Errorf("%w: empty content", ErrGeneration)
	}

	seq, err := u.repo.NextSequence(ctx, now.Year())
	if err != nil {
		log.Error("rfq sequence failed", zap.Error(err))
		return entities.RFQ{}, err
	}
	number := entities.FormatRFQNumber(now.Year(), seq)

	r := entities.RFQ{
		ID:                uuid.NewString(),
		PurchaseRequestID: requestID,
		SupplierID:        supplier.RegistryID,
		SupplierName:      supplier.Name,
		SupplierEmail:     supplier.Email,
		SupplierSource:    supplier.Source,
		Number:            number,
		Subject:           entities.RFQSubject(number),
		Content:           content,
		Status:            entities.RFQStatusBorrador,
		Deadline:          deadline,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		log.Error("rfq create failed", zap.String("rfq_number", number), zap.Error(err))
		return entities.RFQ{}, err
	}
	metrics.RFQsTotal.WithLabelValues("drafted").Inc()
	log.Info("rfq drafted", zap.String("rfq_id", created.ID), zap.String("rfq_number", number))
	return created, nil
}

func (u *RFQUseCase) generationPrompt(supplier entities.SupplierCandidate, items []entities.LineItem, urgency entities.Urgency, deadline time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Proveedor: %s\n", supplier.Name)
	if supplier.Category != "" {
		fmt.Fprintf(&b, "Categoría del proveedor: %s\n", supplier.Category)
	}
	b.WriteString("\nProductos a cotizar:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (Cantidad: %d)", it.Name, it.Quantity)
		if it.Specifications != "" {
			fmt.Fprintf(&b, " - %s", it.Specifications)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nFecha límite de respuesta: %s\n", formatSpanishDate(deadline))
	fmt.Fprintf(&b, "URGENCIA: %s\n", strings.ToUpper(string(urgency)))
	fmt.Fprintf(&b, "\nDatos de contacto de %s:\n", u.cfg.CompanyName)
	if u.cfg.ContactEmail != "" {
		fmt.Fprintf(&b, "- Email: %s\n", u.cfg.ContactEmail)
	}
	if u.cfg.ContactPhone != "" {
		fmt.Fprintf(&b, "- Teléfono: %s\n", u.cfg.ContactPhone)
	}
	return b.String()
}

func (u *RFQUseCase) Dispatch(ctx context.Context, rfqID, editedContent string) (DispatchOutcome, error) {
	rfqID = strings.TrimSpace(rfqID)
	if rfqID == "" {
		return DispatchOutcome{}, ErrInvalidRFQID
	}
	r, err := u.repo.GetByID(ctx, rfqID)
	if err != nil {
		return DispatchOutcome{}, err
	}
	if r.ID == "" {
		return DispatchOutcome{}, ErrRFQNotFound
	}
	log := u.log.With(zap.String("rfq_id", r.ID), zap.String("rfq_number", r.Number))

	if edited := strings.TrimSpace(editedContent); edited != "" && edited != r.Content {
		updated, err := u.repo.UpdateContent(ctx, r.ID, edited)
		if err != nil {
			return DispatchOutcome{}, err
		}
		if updated.ID == "" {
			return DispatchOutcome{}, ErrRFQNotFound
		}
		r = updated
		log.Info("rfq content edited before send")
	}

	out := outcomeFor(r)
	if r.SupplierEmail == "" {
		out.Error = ErrSupplierNoEmail.Error()
		metrics.RFQsTotal.WithLabelValues("send_failed").Inc()
		log.Warn("rfq not sent, supplier has no email")
		return out, nil
	}

	start := time.Now()
	sent, _ := callWithTimeout(ctx, u.timeouts.Email, func(cctx context.Context) (bool, error) {
		return u.email.Send(cctx, r.SupplierEmail, r.Subject, r.Content), nil
	})
	metrics.ExternalCallDuration.WithLabelValues("email", metrics.OutcomeOf(sent)).Observe(time.Since(start).Seconds())
	if !sent {
		out.Error = fmt.Sprintf("%v: email transport did not accept the message", ErrDispatch)
		metrics.RFQsTotal.WithLabelValues("send_failed").Inc()
		log.Warn("rfq send failed", zap.String("to", r.SupplierEmail))
		return out, nil
	}

	out.Success = true
	metrics.RFQsTotal.WithLabelValues("sent").Inc()
	if r.Status.IsTerminal() {
		log.Info("rfq re-sent, status kept", zap.String("status", string(r.Status)))
		return out, nil
	}

	sentAt := u.now()
	updated, err := u.repo.MarkSent(ctx, r.ID, sentAt)
	if err != nil || updated.ID == "" {
		// the email is out; only the bookkeeping failed
		log.Error("rfq mark sent failed", zap.Error(err))
		out.Warnings = append(out.Warnings, "email sent but the RFQ status could not be updated")
		return out, nil
	}
	out.Status = updated.Status
	out.SentAt = updated.SentAt
	log.Info("rfq sent", zap.String("to", r.SupplierEmail))
	return out, nil
}

func outcomeFor(r entities.RFQ) DispatchOutcome {
	return DispatchOutcome{
		RFQID:         r.ID,
		RFQNumber:     r.Number,
		SupplierName:  r.SupplierName,
		SupplierEmail: r.SupplierEmail,
		Source:        r.SupplierSource,
		Status:        r.Status,
		SentAt:        r.SentAt,
	}
}

func (u *RFQUseCase) DraftAndSend(ctx context.Context, requestID string, supplier entities.SupplierCandidate, items []entities.LineItem, urgency entities.Urgency) DispatchOutcome {
	base := DispatchOutcome{
		SupplierName:  supplier.Name,
		SupplierEmail: supplier.Email,
		Source:        supplier.Source,
		Items:         lineItemNames(items),
	}
	r, err := u.Draft(ctx, requestID, supplier, items, urgency)
	if err != nil {
		base.Error = err.Error()
		return base
	}

	out, err := u.Dispatch(ctx, r.ID, "")
	if err != nil {
		base.RFQID = r.ID
		base.RFQNumber = r.Number
		base.Status = r.Status
		base.Error = fmt.Sprintf("%v: %v", ErrDispatch, err)
		return base
	}
	out.Items = base.Items
	return out
}

func (u *RFQUseCase) DispatchMany(ctx context.Context, requestID string, ranked []entities.RankedSupplier, items []entities.LineItem, urgency entities.Urgency) DispatchReport {
	results := make([]DispatchOutcome, len(ranked))

	var g errgroup.Group
	g.SetLimit(u.cfg.Workers)
	for i, rs := range ranked {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					u.log.Error("rfq dispatch panicked", zap.String("supplier", rs.Supplier.Name), zap.Any("panic", rec))
					results[i] = DispatchOutcome{
						SupplierName:  rs.Supplier.Name,
						SupplierEmail: rs.Supplier.Email,
						Source:        rs.Source,
						Error:         fmt.Sprintf("%v: %v", ErrDispatch, rec),
					}
				}
			}()
			subset, warning := itemsForSupplier(rs.AssignedItems, items)
			supplier := rs.Supplier
			if supplier.Source == "" {
				supplier.Source = rs.Source
			}
			out := u.DraftAndSend(ctx, requestID, supplier, subset, urgency)
			if warning != "" {
				u.log.Warn("assigned items mismatch", zap.String("request_id", requestID), zap.String("supplier", supplier.Name), zap.String("warning", warning))
				out.Warnings = append(out.Warnings, warning)
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	report := DispatchReport{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	u.log.Info("rfq fan-out done",
		zap.String("request_id", requestID),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report
}

// itemsForSupplier narrows items to the supplier's assignment. An empty
// assignment means every item. An assignment that names no known item also
// falls back to every item, and the mismatch is returned as a warning.
func itemsForSupplier(assigned []string, items []entities.LineItem) ([]entities.LineItem, string) {
	if len(assigned) == 0 {
		return items, ""
	}
	wanted := make(map[string]bool, len(assigned))
	for _, a := range assigned {
		wanted[normalizeName(a)] = true
	}
	var subset []entities.LineItem
	matched := map[string]bool{}
	for _, it := range items {
		key := normalizeName(it.Name)
		if wanted[key] {
			subset = append(subset, it)
			matched[key] = true
		}
	}
	if len(subset) == 0 {
		return items, fmt.Sprintf("assigned items %q match no requested item, all items used", assigned)
	}
	var unknown []string
	for _, a := range assigned {
		if !matched[normalizeName(a)] {
			unknown = append(unknown, a)
		}
	}
	if len(unknown) > 0 {
		return subset, fmt.Sprintf("assigned items %q are not in the request, ignored", unknown)
	}
	return subset, ""
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func lineItemNames(items []entities.LineItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func (u *RFQUseCase) DraftForRequest(ctx context.Context, requestID string, supplierID int64) (entities.RFQ, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.RFQ{}, ErrInvalidRequestID
	}
	pr, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		return entities.RFQ{}, err
	}
	if pr.ID == "" {
		return entities.RFQ{}, ErrNotFound
	}
	s, err := u.registry.GetByID(ctx, supplierID)
	if err != nil {
		return entities.RFQ{}, err
	}
	if s.RegistryID == 0 {
		return entities.RFQ{}, ErrSupplierNotFound
	}
	s.Source = entities.SourceRegistry
	return u.Draft(ctx, pr.ID, s, pr.Items, pr.Urgency)
}

func (u *RFQUseCase) ListDrafts(ctx context.Context, requestID string) ([]entities.RFQ, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	all, err := u.repo.ListByPurchaseRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	drafts := make([]entities.RFQ, 0, len(all))
	for _, r := range all {
		if r.Status == entities.RFQStatusBorrador {
			drafts = append(drafts, r)
		}
	}
	return drafts, nil
}
