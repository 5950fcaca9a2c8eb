package abuse_window_repo

import (
	"context"
	"sync"
	"time"
)

// creditEvent - зачисление в окне
type creditEvent struct {
	amount int
	at     time.Time
}

// userWindow - окна одного пользователя, события упорядочены по времени
type userWindow struct {
	draws   []time.Time
	credits []creditEvent
}

// trim выкидывает из окон события не позже cutoff
func (w *userWindow) trim(cutoff time.Time) {
	for len(w.draws) > 0 && !w.draws[0].After(cutoff) {
		w.draws = w.draws[1:]
	}
	for len(w.credits) > 0 && !w.credits[0].at.After(cutoff) {
		w.credits = w.credits[1:]
	}
}

func (w *userWindow) empty() bool {
	return len(w.draws) == 0 && len(w.credits) == 0
}

// WindowRepo - окна антиабуза в памяти процесса.
// Живут до перезапуска, общий мьютекс на все окна.
// Пустые окна удаляются, окна пропавших пользователей вычищаются раз в длину окна
type WindowRepo struct {
	mtx       sync.Mutex
	windows   map[int]*userWindow
	lastSweep time.Time
}

func NewAbuseWindowRepository() *WindowRepo {
	return &WindowRepo{
		windows: make(map[int]*userWindow),
	}
}

// window - окно пользователя, уже без устаревших событий
func (r *WindowRepo) window(userID int, at time.Time, window time.Duration) *userWindow {
	cutoff := at.Add(-window)
	r.sweep(at, window, cutoff)

	w, ok := r.windows[userID]
	if !ok {
		return &userWindow{}
	}
	w.trim(cutoff)
	return w
}

// store сохраняет окно пользователя, пустое удаляет
func (r *WindowRepo) store(userID int, w *userWindow) {
	if w.empty() {
		delete(r.windows, userID)
		return
	}
	r.windows[userID] = w
}

// sweep удаляет окна, в которых не осталось событий
func (r *WindowRepo) sweep(at time.Time, window time.Duration, cutoff time.Time) {
	if at.Sub(r.lastSweep) < window {
		return
	}
	r.lastSweep = at

	for id, w := range r.windows {
		w.trim(cutoff)
		if w.empty() {
			delete(r.windows, id)
		}
	}
}

// TryDraw - учитывает открытие, если в окне их не больше limit вместе с новым
func (r *WindowRepo) TryDraw(_ context.Context, userID int, at time.Time, window time.Duration, limit int) (bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	w := r.window(userID, at, window)
	defer r.store(userID, w)

	if len(w.draws)+1 > limit {
		return false, nil
	}
	w.draws = append(w.draws, at)
	return true, nil
}

// TryCredit - учитывает зачисление, если сумма в окне вместе с ним не больше limit
func (r *WindowRepo) TryCredit(_ context.Context, userID int, amount int, at time.Time, window time.Duration, limit int) (bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	w := r.window(userID, at, window)
	defer r.store(userID, w)

	sum := amount
	for _, c := range w.credits {
		sum += c.amount
	}
	if sum > limit {
		return false, nil
	}
	w.credits = append(w.credits, creditEvent{amount: amount, at: at})
	return true, nil
}

// users - число пользователей с непустыми окнами
func (r *WindowRepo) users() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.windows)
}
