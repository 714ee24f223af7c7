package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"pei_compras/internal/domain/entities"
	mock_interfaces "pei_compras/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// rfqStore backs a MockIRFQRepository with an in-memory map so multi-step
// flows can be exercised without scripting every call.
type rfqStore struct {
	mu   sync.Mutex
	byID map[string]entities.RFQ
	seq  map[int]int
}

func newRFQStore(repo *mock_interfaces.MockIRFQRepository) *rfqStore {
	s := &rfqStore{byID: map[string]entities.RFQ{}, seq: map[int]int{}}
	repo.EXPECT().NextSequence(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, year int) (int, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.seq[year]++
			return s.seq[year], nil
		},
	).AnyTimes()
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entities.RFQ) (entities.RFQ, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.byID[r.ID] = r
			return r, nil
		},
	).AnyTimes()
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (entities.RFQ, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.byID[id], nil
		},
	).AnyTimes()
	repo.EXPECT().UpdateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id, content string) (entities.RFQ, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			r, ok := s.byID[id]
			if !ok {
				return entities.RFQ{}, nil
			}
			r.Content = content
			s.byID[id] = r
			return r, nil
		},
	).AnyTimes()
	repo.EXPECT().MarkSent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, at time.Time) (entities.RFQ, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			r, ok := s.byID[id]
			if !ok || r.Status.IsTerminal() {
				return entities.RFQ{}, nil
			}
			r.Status = entities.RFQStatusEnviado
			r.SentAt = &at
			s.byID[id] = r
			return r, nil
		},
	).AnyTimes()
	repo.EXPECT().ListByPurchaseRequestID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, prID string) ([]entities.RFQ, error) {
			return s.forRequest(prID), nil
		},
	).AnyTimes()
	return s
}

func (s *rfqStore) all() []entities.RFQ {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.RFQ, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (s *rfqStore) forRequest(prID string) []entities.RFQ {
	var out []entities.RFQ
	for _, r := range s.all() {
		if r.PurchaseRequestID == prID {
			out = append(out, r)
		}
	}
	return out
}

// requestStore does the same for MockIPurchaseRequestRepository, enforcing the
// conditional transition the DynamoDB repository implements.
type requestStore struct {
	mu   sync.Mutex
	byID map[string]entities.PurchaseRequest
	// transitionErr makes every transition into that status fail.
	transitionErr map[entities.PurchaseRequestStatus]error
}

func newRequestStore(repo *mock_interfaces.MockIPurchaseRequestRepository) *requestStore {
	s := &requestStore{byID: map[string]entities.PurchaseRequest{}}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pr entities.PurchaseRequest) (entities.PurchaseRequest, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.byID[pr.ID] = pr
			return pr, nil
		},
	).AnyTimes()
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (entities.PurchaseRequest, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.byID[id], nil
		},
	).AnyTimes()
	repo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, from, to entities.PurchaseRequestStatus, reason, stage string) (entities.PurchaseRequest, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if err := s.transitionErr[to]; err != nil {
				return entities.PurchaseRequest{}, err
			}
			pr, ok := s.byID[id]
			if !ok || pr.Status != from {
				return entities.PurchaseRequest{}, nil
			}
			pr.Status = to
			pr.FailureReason = reason
			pr.FailedStage = stage
			s.byID[id] = pr
			return pr, nil
		},
	).AnyTimes()
	return s
}

func (s *requestStore) failTransitionsTo(to entities.PurchaseRequestStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transitionErr == nil {
		s.transitionErr = map[entities.PurchaseRequestStatus]error{}
	}
	s.transitionErr[to] = err
}

func (s *requestStore) only() (entities.PurchaseRequest, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pr := range s.byID {
		return pr, len(s.byID)
	}
	return entities.PurchaseRequest{}, 0
}
