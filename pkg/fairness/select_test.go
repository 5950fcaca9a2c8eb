package fairness

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

func scenarioTable() Table {
	return NewTable(map[string]float64{
		"C": 0.375,
		"A": 0.3125,
		"B": 0.3125,
	})
}

func TestRoll_Deterministic(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	first := Roll(secret, "42-1700000000-seed", 1)
	for i := 0; i < 100; i++ {
		if got := Roll(secret, "42-1700000000-seed", 1); got != first {
			t.Fatalf("roll %d: got %v want %v", i, got, first)
		}
	}
}

func TestRoll_Range(t *testing.T) {
	secret := []byte("range-secret")
	for nonce := uint64(0); nonce < 2000; nonce++ {
		x := Roll(secret, "public", nonce)
		if x < 0 || x >= 1 {
			t.Fatalf("nonce %d: roll %v out of [0,1)", nonce, x)
		}
	}
}

func TestRoll_MatchesHMACDerivation(t *testing.T) {
	secret := []byte{1, 2, 3, 4}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("pub:7"))
	v := binary.BigEndian.Uint64(mac.Sum(nil)[:8])
	want := float64(v) / two64

	if got := Roll(secret, "pub", 7); got != want {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestRoll_NonceChangesOutcome(t *testing.T) {
	secret := []byte("nonce-secret")
	seen := map[float64]bool{}
	for nonce := uint64(1); nonce <= 50; nonce++ {
		seen[Roll(secret, "public", nonce)] = true
	}
	if len(seen) < 50 {
		t.Errorf("expected 50 distinct rolls, got %d", len(seen))
	}
}

func TestPick(t *testing.T) {
	table := scenarioTable()

	tests := []struct {
		name string
		x    float64
		want string
	}{
		{"zero", 0, "A"},
		{"inside A", 0.3, "A"},
		{"boundary A/B", 0.3125, "B"},
		{"inside B", 0.5, "B"},
		{"scenario 0.9", 0.9, "C"},
		{"almost one", 0.9999999, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(table, tt.x)
			if !ok {
				t.Fatal("pick failed")
			}
			if got != tt.want {
				t.Errorf("Pick(%v) = %q, want %q", tt.x, got, tt.want)
			}
		})
	}
}

func TestPick_Empty(t *testing.T) {
	if _, ok := Pick(nil, 0.5); ok {
		t.Fatal("empty table should return false")
	}
}

func TestPick_FallbackToLast(t *testing.T) {
	// сумма чуть меньше 1 из-за округления
	table := NewTable(map[string]float64{"a": 0.49999, "b": 0.49999})
	got, ok := Pick(table, 0.99999)
	if !ok || got != "b" {
		t.Errorf("got %q, %v; want last item b", got, ok)
	}
}

func TestPick_OrderIndependent(t *testing.T) {
	unsorted := Table{
		{ItemID: "C", Probability: 0.375},
		{ItemID: "B", Probability: 0.3125},
		{ItemID: "A", Probability: 0.3125},
	}
	for _, x := range []float64{0.1, 0.4, 0.7, 0.95} {
		a, _ := Pick(unsorted, x)
		b, _ := Pick(scenarioTable(), x)
		if a != b {
			t.Errorf("x=%v: unsorted picked %q, sorted picked %q", x, a, b)
		}
	}
}

func TestSelect_Deterministic(t *testing.T) {
	secret, err := GenerateSecretSeed()
	if err != nil {
		t.Fatal(err)
	}
	table := scenarioTable()
	first, ok := Select(secret, "public-seed", 1, table)
	if !ok {
		t.Fatal("select failed")
	}
	for i := 0; i < 50; i++ {
		got, _ := Select(secret, "public-seed", 1, table)
		if got != first {
			t.Fatalf("select %d: got %q want %q", i, got, first)
		}
	}
}

func TestSelect_Distribution(t *testing.T) {
	table := scenarioTable()
	secret := []byte("distribution-secret")
	const rounds = 100_000
	count := map[string]int{}
	for nonce := uint64(0); nonce < rounds; nonce++ {
		id, _ := Select(secret, "public", nonce, table)
		count[id]++
	}
	tol := 0.01
	for _, e := range table {
		got := float64(count[e.ItemID]) / rounds
		if got < e.Probability-tol || got > e.Probability+tol {
			t.Errorf("item %q: proportion %.4f want ~%.4f", e.ItemID, got, e.Probability)
		}
	}
}
