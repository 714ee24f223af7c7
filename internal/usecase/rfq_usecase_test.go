package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"pei_compras/internal/domain/entities"
	"pei_compras/internal/usecase/interfaces"
	mock_interfaces "pei_compras/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type rfqMocks struct {
	repo     *mock_interfaces.MockIRFQRepository
	requests *mock_interfaces.MockIPurchaseRequestRepository
	registry *mock_interfaces.MockISupplierRegistry
	llm      *mock_interfaces.MockICompletionClient
	email    *mock_interfaces.MockIEmailSender
}

func newRFQUseCase(t *testing.T) (*RFQUseCase, rfqMocks) {
	ctrl := gomock.NewController(t)
	m := rfqMocks{
		repo:     mock_interfaces.NewMockIRFQRepository(ctrl),
		requests: mock_interfaces.NewMockIPurchaseRequestRepository(ctrl),
		registry: mock_interfaces.NewMockISupplierRegistry(ctrl),
		llm:      mock_interfaces.NewMockICompletionClient(ctrl),
		email:    mock_interfaces.NewMockIEmailSender(ctrl),
	}
	cfg := RFQConfig{CompanyName: "PEI", ContactEmail: "compras@pei.com", ContactPhone: "+52-55-1234-5678", Workers: 3}
	uc := NewRFQUseCase(m.repo, m.requests, m.registry, m.llm, m.email, cfg, Timeouts{}, fixedClock, nil)
	return uc, m
}

var techSupplier = entities.SupplierCandidate{
	RegistryID: 1,
	Name:       "Tech Solutions Chile",
	Email:      "ventas@techsolutions.cl",
	Category:   entities.CategoryTecnologia,
	Source:     entities.SourceRegistry,
}

func TestRFQUseCase_Draft(t *testing.T) {
	t.Run("persists a draft with number and deadline", func(t *testing.T) {
		uc, m := newRFQUseCase(t)

		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.CompletionRequest) (string, error) {
				assert.Equal(t, interfaces.ModelTierFull, req.Tier)
				assert.Equal(t, float32(0.7), req.Temperature)
				assert.False(t, req.JSONMode)
				assert.Contains(t, req.UserPrompt, "Tech Solutions Chile")
				assert.Contains(t, req.UserPrompt, "- Laptop HP (Cantidad: 5) - 16GB RAM")
				assert.Contains(t, req.UserPrompt, "URGENCIA: ALTA")
				assert.Contains(t, req.UserPrompt, "13 de marzo de 2026")
				assert.Contains(t, req.UserPrompt, "compras@pei.com")
				return "  Estimado proveedor...  ", nil
			},
		)
		m.repo.EXPECT().NextSequence(gomock.Any(), 2026).Return(7, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r entities.RFQ) (entities.RFQ, error) { return r, nil },
		)

		items := []entities.LineItem{{Name: "Laptop HP", Quantity: 5, Category: entities.CategoryTecnologia, Specifications: "16GB RAM"}}
		r, err := uc.Draft(context.Background(), "pr-1", techSupplier, items, entities.UrgencyAlta)
		require.NoError(t, err)

		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "pr-1", r.PurchaseRequestID)
		assert.Equal(t, int64(1), r.SupplierID)
		assert.Equal(t, "RFQ-2026-0007", r.Number)
		assert.Equal(t, "Solicitud de Cotización - RFQ-2026-0007", r.Subject)
		assert.Equal(t, "Estimado proveedor...", r.Content)
		assert.Equal(t, entities.RFQStatusBorrador, r.Status)
		assert.Equal(t, fixedNow.Add(72*time.Hour), r.Deadline)
		assert.Nil(t, r.SentAt)
	})

	t.Run("generation failure persists nothing", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))

		_, err := uc.Draft(context.Background(), "pr-1", techSupplier, laptopItems, entities.UrgencyNormal)
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("empty generation is a failure", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("  ", nil)

		_, err := uc.Draft(context.Background(), "pr-1", techSupplier, laptopItems, entities.UrgencyNormal)
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("deadline per urgency", func(t *testing.T) {
		for urgency, days := range map[entities.Urgency]int{entities.UrgencyNormal: 5, entities.UrgencyAlta: 3, entities.UrgencyUrgente: 1} {
			uc, m := newRFQUseCase(t)
			newRFQStore(m.repo)
			m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("contenido", nil)

			r, err := uc.Draft(context.Background(), "pr-1", techSupplier, laptopItems, urgency)
			require.NoError(t, err)
			assert.Equal(t, fixedNow.AddDate(0, 0, days), r.Deadline, string(urgency))
		}
	})

	t.Run("missing request id", func(t *testing.T) {
		uc, _ := newRFQUseCase(t)
		_, err := uc.Draft(context.Background(), " ", techSupplier, laptopItems, entities.UrgencyNormal)
		assert.ErrorIs(t, err, ErrInvalidRequestID)
	})
}

func seedDraft(store *rfqStore, r entities.RFQ) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.byID[r.ID] = r
}

func TestRFQUseCase_Dispatch(t *testing.T) {
	draft := entities.RFQ{
		ID:                "rfq-1",
		PurchaseRequestID: "pr-1",
		SupplierName:      "Tech Solutions Chile",
		SupplierEmail:     "ventas@techsolutions.cl",
		Number:            "RFQ-2026-0001",
		Subject:           "Solicitud de Cotización - RFQ-2026-0001",
		Content:           "original",
		Status:            entities.RFQStatusBorrador,
	}

	t.Run("unknown rfq", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		newRFQStore(m.repo)

		_, err := uc.Dispatch(context.Background(), "missing", "")
		assert.ErrorIs(t, err, ErrRFQNotFound)
	})

	t.Run("sends edited content and marks sent", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		seedDraft(store, draft)
		m.email.EXPECT().Send(gomock.Any(), "ventas@techsolutions.cl", draft.Subject, "editado").Return(true)

		out, err := uc.Dispatch(context.Background(), "rfq-1", "editado")
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, entities.RFQStatusEnviado, out.Status)
		require.NotNil(t, out.SentAt)
		assert.Equal(t, fixedNow, *out.SentAt)
		assert.Equal(t, "editado", store.byID["rfq-1"].Content)
	})

	t.Run("email failure keeps draft", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		seedDraft(store, draft)
		m.email.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), "original").Return(false)

		out, err := uc.Dispatch(context.Background(), "rfq-1", "")
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.NotEmpty(t, out.Error)
		assert.Equal(t, entities.RFQStatusBorrador, store.byID["rfq-1"].Status)
		assert.Nil(t, store.byID["rfq-1"].SentAt)
	})

	t.Run("closed rfq keeps its status", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		answered := draft
		answered.Status = entities.RFQStatusRespondido
		seedDraft(store, answered)
		m.email.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)

		out, err := uc.Dispatch(context.Background(), "rfq-1", "")
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, entities.RFQStatusRespondido, out.Status)
		assert.Equal(t, entities.RFQStatusRespondido, store.byID["rfq-1"].Status)
	})

	t.Run("supplier without email", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		noEmail := draft
		noEmail.SupplierEmail = ""
		seedDraft(store, noEmail)

		out, err := uc.Dispatch(context.Background(), "rfq-1", "")
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, ErrSupplierNoEmail.Error(), out.Error)
	})
}

func TestRFQUseCase_DraftAndSend(t *testing.T) {
	t.Run("draft survives failed send", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("contenido", nil)
		m.email.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false)

		out := uc.DraftAndSend(context.Background(), "pr-1", techSupplier, laptopItems, entities.UrgencyNormal)
		assert.False(t, out.Success)
		assert.Equal(t, "RFQ-2026-0001", out.RFQNumber)

		all := store.all()
		require.Len(t, all, 1)
		assert.Equal(t, entities.RFQStatusBorrador, all[0].Status)
	})

	t.Run("supplier without email keeps the draft", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("contenido", nil)
		s := techSupplier
		s.Email = ""

		out := uc.DraftAndSend(context.Background(), "pr-1", s, laptopItems, entities.UrgencyNormal)
		assert.False(t, out.Success)
		assert.Equal(t, ErrSupplierNoEmail.Error(), out.Error)
		assert.Equal(t, "RFQ-2026-0001", out.RFQNumber)
		assert.Equal(t, []string{"Laptop HP", "Monitor 24"}, out.Items)

		all := store.all()
		require.Len(t, all, 1)
		assert.Equal(t, entities.RFQStatusBorrador, all[0].Status)
		assert.Equal(t, out.RFQID, all[0].ID)
	})
}

func TestRFQUseCase_DispatchMany(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		uc, _ := newRFQUseCase(t)

		report := uc.DispatchMany(context.Background(), "pr-1", nil, laptopItems, entities.UrgencyNormal)
		assert.Equal(t, 0, report.Total)
		assert.Equal(t, 0, report.Succeeded)
		assert.Equal(t, 0, report.Failed)
		assert.Len(t, report.Results, 0)
	})

	t.Run("one supplier fails without affecting the other", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("contenido", nil).Times(2)
		m.email.EXPECT().Send(gomock.Any(), "ok@example.com", gomock.Any(), gomock.Any()).Return(true)
		m.email.EXPECT().Send(gomock.Any(), "bounce@example.com", gomock.Any(), gomock.Any()).Return(false)

		ranked := []entities.RankedSupplier{
			{Supplier: entities.SupplierCandidate{Name: "A", Email: "ok@example.com"}, Source: entities.SourceWeb, Priority: 1},
			{Supplier: entities.SupplierCandidate{Name: "B", Email: "bounce@example.com"}, Source: entities.SourceWeb, Priority: 2},
		}
		report := uc.DispatchMany(context.Background(), "pr-1", ranked, laptopItems, entities.UrgencyUrgente)

		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Results, 2)
		assert.Equal(t, "A", report.Results[0].SupplierName)
		assert.True(t, report.Results[0].Success)
		assert.Equal(t, "B", report.Results[1].SupplierName)
		assert.False(t, report.Results[1].Success)
		assert.Len(t, store.all(), 2)
	})

	t.Run("assignment mismatch falls back with a warning", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		newRFQStore(m.repo)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.CompletionRequest) (string, error) {
				assert.Contains(t, req.UserPrompt, "Laptop HP")
				assert.Contains(t, req.UserPrompt, "Monitor 24")
				return "contenido", nil
			},
		)
		m.email.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)

		ranked := []entities.RankedSupplier{{Supplier: techSupplier, Source: entities.SourceRegistry, AssignedItems: []string{"Impresora"}}}
		report := uc.DispatchMany(context.Background(), "pr-1", ranked, laptopItems, entities.UrgencyNormal)

		require.Len(t, report.Results, 1)
		assert.True(t, report.Results[0].Success)
		require.Len(t, report.Results[0].Warnings, 1)
		assert.Contains(t, report.Results[0].Warnings[0], "Impresora")
	})

	t.Run("concurrent drafts get unique increasing numbers", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("contenido", nil).AnyTimes()
		m.email.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).AnyTimes()

		ranked := make([]entities.RankedSupplier, 12)
		for i := range ranked {
			ranked[i] = entities.RankedSupplier{
				Supplier: entities.SupplierCandidate{Name: fmt.Sprintf("S%d", i), Email: fmt.Sprintf("s%d@example.com", i)},
				Source:   entities.SourceWeb,
			}
		}
		report := uc.DispatchMany(context.Background(), "pr-1", ranked, laptopItems, entities.UrgencyNormal)
		assert.Equal(t, 12, report.Succeeded)

		seen := map[string]bool{}
		for i, r := range store.all() {
			assert.False(t, seen[r.Number], r.Number)
			seen[r.Number] = true
			assert.Equal(t, entities.FormatRFQNumber(2026, i+1), r.Number)
		}
		assert.Len(t, seen, 12)
	})

	t.Run("a panicking supplier is isolated", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		newRFQStore(m.repo)
		var once sync.Once
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.CompletionRequest) (string, error) {
				if strings.Contains(req.UserPrompt, "Proveedor: Roto") {
					once.Do(func() { panic("boom") })
				}
				return "contenido", nil
			},
		).Times(2)
		m.email.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)

		ranked := []entities.RankedSupplier{
			{Supplier: entities.SupplierCandidate{Name: "Roto", Email: "x@example.com"}, Source: entities.SourceWeb},
			{Supplier: entities.SupplierCandidate{Name: "Sano", Email: "y@example.com"}, Source: entities.SourceWeb},
		}
		report := uc.DispatchMany(context.Background(), "pr-1", ranked, laptopItems, entities.UrgencyNormal)
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		assert.Contains(t, report.Results[0].Error, "boom")
	})
}

func TestRFQUseCase_DraftForRequestAndListDrafts(t *testing.T) {
	t.Run("unknown request", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		m.requests.EXPECT().GetByID(gomock.Any(), "pr-x").Return(entities.PurchaseRequest{}, nil)

		_, err := uc.DraftForRequest(context.Background(), "pr-x", 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		m.requests.EXPECT().GetByID(gomock.Any(), "pr-1").Return(entities.PurchaseRequest{ID: "pr-1"}, nil)
		m.registry.EXPECT().GetByID(gomock.Any(), int64(42)).Return(entities.SupplierCandidate{}, nil)

		_, err := uc.DraftForRequest(context.Background(), "pr-1", 42)
		assert.ErrorIs(t, err, ErrSupplierNotFound)
	})

	t.Run("drafts from stored items and lists only drafts", func(t *testing.T) {
		uc, m := newRFQUseCase(t)
		store := newRFQStore(m.repo)
		m.requests.EXPECT().GetByID(gomock.Any(), "pr-1").Return(entities.PurchaseRequest{ID: "pr-1", Items: laptopItems, Urgency: entities.UrgencyUrgente}, nil)
		m.registry.EXPECT().GetByID(gomock.Any(), int64(1)).Return(techSupplier, nil)
		m.llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("contenido", nil)

		r, err := uc.DraftForRequest(context.Background(), "pr-1", 1)
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(24*time.Hour), r.Deadline)

		seedDraft(store, entities.RFQ{ID: "sent", PurchaseRequestID: "pr-1", Number: "RFQ-2026-0100", Status: entities.RFQStatusEnviado})
		drafts, err := uc.ListDrafts(context.Background(), "pr-1")
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, r.ID, drafts[0].ID)
	})
}
