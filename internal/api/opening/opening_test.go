package opening

import (
	"context"
	"encoding/json"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stubService struct {
	err      error
	gotUser  int
	gotCase  int
	gotLimit uint64
}

func (s *stubService) Open(_ context.Context, userID, caseID int) (*model.OpenResult, error) {
	s.gotUser, s.gotCase = userID, caseID
	if s.err != nil {
		return nil, s.err
	}
	return &model.OpenResult{
		DrawID:  "d1",
		Item:    model.Item{ID: "A", Name: "Knife", Rarity: model.RarityCommon, Value: 5},
		Seeds:   model.SeedPair{SecretSeed: "ab", SecretSeedCommitment: "cd", PublicSeed: "7-1-x"},
		Nonce:   1,
		Balance: 90,
	}, nil
}

func (s *stubService) Odds(_ context.Context, caseID int) ([]model.Odds, error) {
	s.gotCase = caseID
	if s.err != nil {
		return nil, s.err
	}
	return []model.Odds{{Item: model.Item{ID: "A"}, Probability: 1}}, nil
}

func (s *stubService) GetDraw(_ context.Context, userID int, drawID string) (*model.DrawRecord, error) {
	s.gotUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return &model.DrawRecord{ID: drawID, UserID: userID, ItemID: "A"}, nil
}

func (s *stubService) ListDraws(_ context.Context, userID int, limit uint64) ([]model.DrawRecord, error) {
	s.gotUser, s.gotLimit = userID, limit
	return nil, s.err
}

func router(h *Handler, userID int) chi.Router {
	r := chi.NewRouter()
	r.Get("/cases/{id}/odds", h.Odds)
	r.Group(func(rr chi.Router) {
		rr.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), userID)))
			})
		})
		rr.Post("/cases/{id}/open", h.Open)
		rr.Get("/draws/{id}", h.GetDraw)
		rr.Get("/draws", h.ListDraws)
	})
	return r
}

func TestOpenHandler(t *testing.T) {
	serv := &stubService{}
	r := router(NewHandler(HandlerDeps{Serv: serv}), 7)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cases/3/open", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if serv.gotUser != 7 || serv.gotCase != 3 {
		t.Errorf("service called with user %d case %d", serv.gotUser, serv.gotCase)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	seeds, _ := body["seeds"].(map[string]any)
	if seeds["secret_seed"] != "ab" || body["draw_id"] != "d1" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestOpenHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "bad case id", path: "/cases/abc/open", status: http.StatusBadRequest},
		{name: "rate limited", path: "/cases/1/open", err: model.ErrRateLimited, status: http.StatusTooManyRequests},
		{name: "insufficient funds", path: "/cases/1/open", err: model.ErrInsufficientFunds, status: http.StatusPaymentRequired},
		{name: "blocked", path: "/cases/1/open", err: model.ErrUserBlocked, status: http.StatusForbidden},
		{name: "unavailable", path: "/cases/1/open", err: model.ErrPoolUnavailable, status: http.StatusConflict},
		{name: "persistence", path: "/cases/1/open", err: model.ErrPersistenceFailure, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := router(NewHandler(HandlerDeps{Serv: &stubService{err: tt.err}}), 1)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("status %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestOddsAndDraws(t *testing.T) {
	serv := &stubService{}
	r := router(NewHandler(HandlerDeps{Serv: serv}), 7)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cases/2/odds", nil))
	if w.Code != http.StatusOK || serv.gotCase != 2 {
		t.Errorf("odds: status %d case %d", w.Code, serv.gotCase)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws/d9", nil))
	if w.Code != http.StatusOK {
		t.Errorf("get draw: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws?limit=5", nil))
	if w.Code != http.StatusOK || serv.gotLimit != 5 {
		t.Errorf("list draws: status %d limit %d", w.Code, serv.gotLimit)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws?limit=-1", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status %d", w.Code)
	}
}
