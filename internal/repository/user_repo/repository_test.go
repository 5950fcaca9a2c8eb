package user_repo

import (
	"context"
	"errors"
	"lootbox_backend/internal/model"
	"os"
	"testing"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
)

// setupPG подключается к PG_DSN и применяет схему. Без базы тест пропускается
func setupPG(t *testing.T) (*pgxpool.Pool, int) {
	t.Helper()
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN is not set")
	}

	ctx := context.Background()
	dbc, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(dbc.Close)

	schema, err := os.ReadFile("../../../migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := dbc.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	var id int
	if err := dbc.QueryRow(ctx, "INSERT INTO users (balance) VALUES (100) RETURNING id").Scan(&id); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = dbc.Exec(context.Background(), "DELETE FROM users WHERE id = $1", id)
	})
	return dbc, id
}

func TestUserRepo_Debit(t *testing.T) {
	dbc, id := setupPG(t)
	r := NewUserRepository(dbc)
	ctx := context.Background()

	if err := r.Debit(ctx, id, 101); !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := r.Debit(ctx, id, 40); err != nil {
		t.Fatalf("debit: %v", err)
	}

	user, err := r.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Balance != 60 {
		t.Errorf("balance %d, want 60", user.Balance)
	}
}

func TestUserRepo_RollbackJoinsAmbientTx(t *testing.T) {
	dbc, id := setupPG(t)
	r := NewUserRepository(dbc)
	ctx := context.Background()

	txManager, err := manager.New(trmpgx.NewDefaultFactory(dbc))
	if err != nil {
		t.Fatalf("tx manager: %v", err)
	}

	boom := errors.New("boom")
	err = txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := r.GetBalance(txCtx, id); err != nil {
			return err
		}
		if err := r.Debit(txCtx, id, 30); err != nil {
			return err
		}
		if _, err := r.NextDrawNonce(txCtx, id); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	user, err := r.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Balance != 100 || user.DrawNonce != 0 {
		t.Errorf("rollback left balance %d nonce %d", user.Balance, user.DrawNonce)
	}
}

func TestUserRepo_NotFound(t *testing.T) {
	dbc, _ := setupPG(t)
	r := NewUserRepository(dbc)

	if _, err := r.GetUser(context.Background(), -1); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
