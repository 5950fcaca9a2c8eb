package wallet

import (
	"context"
	"errors"
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository/abuse_window_repo"
	"lootbox_backend/internal/repository/fake"
	"lootbox_backend/internal/service/abuse"
	"lootbox_backend/internal/service/notify"
	"testing"
	"time"
)

type abuseConfig struct{}

func (abuseConfig) Window() time.Duration { return time.Minute }
func (abuseConfig) MaxDraws() int         { return 50 }
func (abuseConfig) MaxCredit() int        { return 1000 }
func (abuseConfig) FlagsToBlock() int     { return 3 }
func (abuseConfig) Store() string         { return config.AbuseStoreMemory }

func newWallet(t *testing.T) (*serv, *fake.Store) {
	t.Helper()
	store := fake.NewStore()
	store.PutUser(model.User{ID: 1, Balance: 100})
	gate := abuse.NewAbuseGate(abuseConfig{}, abuse_window_repo.NewAbuseWindowRepository(), store, store, notify.NewNotifyService())
	return NewWalletService(store, gate, fake.NewTxManager()).(*serv), store
}

func TestDeposit(t *testing.T) {
	s, store := newWallet(t)

	user, err := s.Deposit(context.Background(), 1, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Balance != 500 || store.User(1).Balance != 500 {
		t.Errorf("balance %d, want 500", user.Balance)
	}
}

func TestDeposit_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*fake.Store)
		amount  int
		wantErr error
	}{
		{name: "zero amount", amount: 0, wantErr: model.ErrMalformedInput},
		{name: "negative amount", amount: -5, wantErr: model.ErrMalformedInput},
		{name: "over credit limit", amount: 1001, wantErr: model.ErrRateLimited},
		{
			name:    "blocked user",
			prepare: func(st *fake.Store) { st.PutUser(model.User{ID: 1, Balance: 100, Blocked: true}) },
			amount:  10,
			wantErr: model.ErrUserBlocked,
		},
		{
			name:    "storage failure",
			prepare: func(st *fake.Store) { st.Fail("Credit", errors.New("timeout")) },
			amount:  10,
			wantErr: model.ErrPersistenceFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newWallet(t)
			if tt.prepare != nil {
				tt.prepare(store)
			}

			_, err := s.Deposit(context.Background(), 1, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := store.User(1).Balance; got != 100 {
				t.Errorf("balance %d, want 100", got)
			}
		})
	}
}

func TestDeposit_OverLimitFlagsAfterRollback(t *testing.T) {
	s, store := newWallet(t)
	store.LockTimeout = 50 * time.Millisecond

	if _, err := s.Deposit(context.Background(), 1, 5000); !errors.Is(err, model.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if got := len(store.Flags()); got != 1 {
		t.Errorf("%d abuse flags, want 1", got)
	}
}

func TestDeposit_SharesCreditWindow(t *testing.T) {
	s, _ := newWallet(t)
	ctx := context.Background()

	if _, err := s.Deposit(ctx, 1, 600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Deposit(ctx, 1, 600); !errors.Is(err, model.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGetWallet(t *testing.T) {
	s, _ := newWallet(t)

	user, err := s.GetWallet(context.Background(), 1)
	if err != nil || user.Balance != 100 {
		t.Fatalf("got %+v, %v", user, err)
	}
	if _, err := s.GetWallet(context.Background(), 2); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
