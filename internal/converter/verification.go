package converter

import (
	"lootbox_backend/internal/api/dto/verification"
	"lootbox_backend/internal/model"
)

func ToVerifyRequest(req verification.VerifyRequest) model.VerifyRequest {
	items := make([]model.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = model.Item{
			ID:     it.ID,
			Name:   it.Name,
			Rarity: model.Rarity(it.Rarity),
			Value:  it.Value,
		}
	}
	return model.VerifyRequest{
		SecretSeed:    req.SecretSeed,
		PublicSeed:    req.PublicSeed,
		Nonce:         req.Nonce,
		Items:         items,
		ClaimedItemID: req.ClaimedItemID,
		Commitment:    req.Commitment,
	}
}

func ToVerifyResponse(res model.VerifyResult) verification.VerifyResponse {
	return verification.VerifyResponse{
		Matches:           res.Matches,
		RecomputedItemID:  res.RecomputedItemID,
		CommitmentChecked: res.CommitmentChecked,
		CommitmentMatches: res.CommitmentMatches,
	}
}
