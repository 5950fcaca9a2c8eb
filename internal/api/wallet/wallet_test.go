package wallet

import (
	"context"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubService struct {
	err       error
	gotAmount int
}

func (s *stubService) Deposit(_ context.Context, userID int, amount int) (*model.User, error) {
	s.gotAmount = amount
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: userID, Balance: amount}, nil
}

func (s *stubService) GetWallet(_ context.Context, userID int) (*model.User, error) {
	return &model.User{ID: userID, Balance: 10}, s.err
}

func withUser(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), 1))
}

func TestDepositHandler(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "ok", body: `{"amount": 50}`, status: http.StatusOK},
		{name: "bad json", body: `{"amount":`, status: http.StatusBadRequest},
		{name: "malformed", body: `{"amount": 0}`, err: model.ErrMalformedInput, status: http.StatusBadRequest},
		{name: "rate limited", body: `{"amount": 50}`, err: model.ErrRateLimited, status: http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(HandlerDeps{Serv: &stubService{err: tt.err}})
			w := httptest.NewRecorder()
			h.Deposit(w, withUser(httptest.NewRequest(http.MethodPost, "/wallet/deposit", strings.NewReader(tt.body))))
			if w.Code != tt.status {
				t.Errorf("status %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestGetHandler_Unauthorized(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &stubService{}})
	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/wallet", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}
