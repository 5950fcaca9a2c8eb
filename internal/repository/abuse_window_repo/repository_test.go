package abuse_window_repo

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTryDraw_Limit(t *testing.T) {
	repo := NewAbuseWindowRepository()
	ctx := context.Background()
	start := time.Unix(1700000000, 0)

	for i := 0; i < 50; i++ {
		ok, err := repo.TryDraw(ctx, 1, start.Add(time.Duration(i)*time.Millisecond), time.Minute, 50)
		if err != nil || !ok {
			t.Fatalf("draw %d should pass: %v %v", i+1, ok, err)
		}
	}
	ok, _ := repo.TryDraw(ctx, 1, start.Add(time.Second), time.Minute, 50)
	if ok {
		t.Fatal("51st draw within the window should be rejected")
	}

	// другой пользователь независим
	ok, _ = repo.TryDraw(ctx, 2, start.Add(time.Second), time.Minute, 50)
	if !ok {
		t.Fatal("another user should not be affected")
	}
}

func TestTryDraw_WindowSlides(t *testing.T) {
	repo := NewAbuseWindowRepository()
	ctx := context.Background()
	start := time.Unix(1700000000, 0)

	for i := 0; i < 3; i++ {
		if ok, _ := repo.TryDraw(ctx, 1, start, time.Minute, 3); !ok {
			t.Fatalf("draw %d should pass", i+1)
		}
	}
	if ok, _ := repo.TryDraw(ctx, 1, start.Add(59*time.Second), time.Minute, 3); ok {
		t.Fatal("window is still full")
	}
	if ok, _ := repo.TryDraw(ctx, 1, start.Add(time.Minute), time.Minute, 3); !ok {
		t.Fatal("old draws should have left the window")
	}
}

func TestTryCredit(t *testing.T) {
	repo := NewAbuseWindowRepository()
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	if ok, _ := repo.TryCredit(ctx, 1, 60000, now, time.Minute, 100000); !ok {
		t.Fatal("first credit should pass")
	}
	if ok, _ := repo.TryCredit(ctx, 1, 50000, now.Add(time.Second), time.Minute, 100000); ok {
		t.Fatal("credit over the ceiling should be rejected")
	}
	// отклоненное зачисление не учитывается
	if ok, _ := repo.TryCredit(ctx, 1, 40000, now.Add(2*time.Second), time.Minute, 100000); !ok {
		t.Fatal("credit up to the ceiling should pass")
	}
	if ok, _ := repo.TryCredit(ctx, 1, 100000, now.Add(2*time.Minute), time.Minute, 100000); !ok {
		t.Fatal("window should be empty after it elapsed")
	}
}

func TestTryDraw_Concurrent(t *testing.T) {
	repo := NewAbuseWindowRepository()
	ctx := context.Background()
	now := time.Now()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		passed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := repo.TryDraw(ctx, 1, now, time.Minute, 50)
			if ok {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if passed != 50 {
		t.Errorf("passed %d draws, want exactly 50", passed)
	}
}

func TestWindows_EmptyEntriesRemoved(t *testing.T) {
	repo := NewAbuseWindowRepository()
	ctx := context.Background()
	start := time.Unix(1700000000, 0)

	for id := 1; id <= 100; id++ {
		if ok, _ := repo.TryDraw(ctx, id, start, time.Minute, 50); !ok {
			t.Fatalf("user %d: draw should pass", id)
		}
	}
	if got := repo.users(); got != 100 {
		t.Fatalf("%d users tracked, want 100", got)
	}

	// кредит сверх лимита при пустом окне ничего не оставляет
	if ok, _ := repo.TryCredit(ctx, 500, 10, start, time.Minute, 5); ok {
		t.Fatal("credit over the ceiling should be rejected")
	}
	if got := repo.users(); got != 100 {
		t.Errorf("rejected credit left an entry: %d users tracked", got)
	}

	// через окно остаются только активные пользователи
	later := start.Add(2 * time.Minute)
	if ok, _ := repo.TryDraw(ctx, 1, later, time.Minute, 50); !ok {
		t.Fatal("draw after the window should pass")
	}
	if got := repo.users(); got != 1 {
		t.Errorf("%d users tracked after the window elapsed, want 1", got)
	}
}
