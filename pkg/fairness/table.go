package fairness

import (
	"math"
	"sort"
)

// Tolerance - допустимое отклонение суммы вероятностей от 1
const Tolerance = 1e-4

// Entry - вероятность одного предмета
type Entry struct {
	ItemID      string
	Probability float64
}

// Table - таблица вероятностей, всегда отсортирована по ItemID.
// Порядок входит в контракт выбора: от него зависит воспроизводимость
type Table []Entry

// NewTable строит таблицу из отображения предмет -> вероятность
func NewTable(probs map[string]float64) Table {
	t := make(Table, 0, len(probs))
	for id, p := range probs {
		t = append(t, Entry{ItemID: id, Probability: p})
	}
	sort.Slice(t, func(i, j int) bool { return t[i].ItemID < t[j].ItemID })
	return t
}

// Sum - сумма вероятностей
func (t Table) Sum() float64 {
	var sum float64
	for _, e := range t {
		sum += e.Probability
	}
	return sum
}

// Probability возвращает вероятность предмета, 0 если его нет
func (t Table) Probability(itemID string) float64 {
	for _, e := range t {
		if e.ItemID == itemID {
			return e.Probability
		}
	}
	return 0
}

// Valid - каждая вероятность в (0,1], сумма равна 1 с точностью Tolerance
func (t Table) Valid() bool {
	if len(t) == 0 {
		return false
	}
	for _, e := range t {
		if e.Probability <= 0 || e.Probability > 1 || math.IsNaN(e.Probability) {
			return false
		}
	}
	return math.Abs(t.Sum()-1) <= Tolerance
}
