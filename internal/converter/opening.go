package converter

import (
	"lootbox_backend/internal/api/dto/opening"
	"lootbox_backend/internal/model"
)

func ToOpenResponse(res model.OpenResult) opening.OpenResponse {
	return opening.OpenResponse{
		DrawID:  res.DrawID,
		Item:    toItem(res.Item),
		Seeds:   toSeeds(res.Seeds),
		Nonce:   res.Nonce,
		Balance: res.Balance,
	}
}

func ToOddsResponse(caseID int, odds []model.Odds) opening.OddsResponse {
	result := make([]opening.Odds, len(odds))
	for i, o := range odds {
		result[i] = opening.Odds{
			Item:        toItem(o.Item),
			Probability: o.Probability,
		}
	}
	return opening.OddsResponse{CaseID: caseID, Odds: result}
}

func ToDrawResponse(rec model.DrawRecord) opening.DrawResponse {
	return opening.DrawResponse{
		ID:        rec.ID,
		CaseID:    rec.CaseID,
		ItemID:    rec.ItemID,
		Seeds:     toSeeds(rec.Seeds),
		Nonce:     rec.Nonce,
		CreatedAt: rec.CreatedAt,
	}
}

func ToDrawListResponse(records []model.DrawRecord) opening.DrawListResponse {
	result := make([]opening.DrawResponse, len(records))
	for i, rec := range records {
		result[i] = ToDrawResponse(rec)
	}
	return opening.DrawListResponse{Draws: result}
}

func toItem(item model.Item) opening.Item {
	return opening.Item{
		ID:     item.ID,
		Name:   item.Name,
		Rarity: string(item.Rarity),
		Value:  item.Value,
	}
}

func toSeeds(seeds model.SeedPair) opening.Seeds {
	return opening.Seeds{
		SecretSeed:           seeds.SecretSeed,
		SecretSeedCommitment: seeds.SecretSeedCommitment,
		PublicSeed:           seeds.PublicSeed,
	}
}
