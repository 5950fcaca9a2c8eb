package fairness

import "testing"

func TestNewTable_SortedByID(t *testing.T) {
	table := NewTable(map[string]float64{"z": 0.2, "a": 0.5, "m": 0.3})
	want := []string{"a", "m", "z"}
	for i, e := range table {
		if e.ItemID != want[i] {
			t.Fatalf("position %d: got %q want %q", i, e.ItemID, want[i])
		}
	}
}

func TestTable_Valid(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		want  bool
	}{
		{"empty", Table{}, false},
		{"sums to one", NewTable(map[string]float64{"a": 0.5, "b": 0.5}), true},
		{"within tolerance", NewTable(map[string]float64{"a": 0.49996, "b": 0.5}), true},
		{"short", NewTable(map[string]float64{"a": 0.4, "b": 0.5}), false},
		{"zero entry", NewTable(map[string]float64{"a": 0, "b": 1}), false},
		{"above one", NewTable(map[string]float64{"a": 1.5, "b": -0.5}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.table.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
