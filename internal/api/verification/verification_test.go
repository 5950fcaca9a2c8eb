package verification

import (
	"encoding/json"
	"fmt"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/service/distribution"
	verificationService "lootbox_backend/internal/service/verification"
	"lootbox_backend/pkg/fairness"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type drawConfig struct{}

func (drawConfig) TierWeights() map[model.Rarity]float64 {
	return map[model.Rarity]float64{model.RarityCommon: 0.5, model.RarityRare: 0.3}
}
func (drawConfig) SequenceMode() string   { return "fixed" }
func (drawConfig) ExperiencePerDraw() int { return 0 }

func TestVerifyHandler(t *testing.T) {
	dist := distribution.NewDistributionService(drawConfig{})
	h := NewHandler(HandlerDeps{Serv: verificationService.NewVerificationService(dist)})

	items := []model.Item{
		{ID: "A", Rarity: model.RarityCommon},
		{ID: "B", Rarity: model.RarityCommon},
		{ID: "C", Rarity: model.RarityRare},
	}
	table, err := dist.Compute(items)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	seeds, err := fairness.NewSeeds(1, time.Now())
	if err != nil {
		t.Fatalf("seeds: %v", err)
	}
	itemID, _ := fairness.Select(seeds.Secret, seeds.Public, 1, table)

	body := fmt.Sprintf(`{
		"secret_seed": %q,
		"public_seed": %q,
		"nonce": 1,
		"items": [{"id": "C", "rarity": "rare"}, {"id": "A", "rarity": "common"}, {"id": "B", "rarity": "common"}],
		"claimed_item_id": %q,
		"secret_seed_commitment": %q
	}`, seeds.SecretHex(), seeds.Public, itemID, seeds.Commitment)

	w := httptest.NewRecorder()
	h.Verify(w, httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var got struct {
		Matches           bool   `json:"matches"`
		RecomputedItemID  string `json:"recomputed_item_id"`
		CommitmentMatches bool   `json:"commitment_matches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Matches || got.RecomputedItemID != itemID || !got.CommitmentMatches {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestVerifyHandler_BadRequest(t *testing.T) {
	dist := distribution.NewDistributionService(drawConfig{})
	h := NewHandler(HandlerDeps{Serv: verificationService.NewVerificationService(dist)})

	for _, body := range []string{
		`not json`,
		`{"secret_seed": "zz", "public_seed": "p", "nonce": 1, "items": [{"id": "A", "rarity": "common"}], "claimed_item_id": "A"}`,
	} {
		w := httptest.NewRecorder()
		h.Verify(w, httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status %d, want 400", body, w.Code)
		}
	}
}
