package converter

import (
	"lootbox_backend/internal/api/dto/wallet"
	"lootbox_backend/internal/model"
)

func ToWalletResponse(user model.User) wallet.WalletResponse {
	return wallet.WalletResponse{
		Balance:    user.Balance,
		Blocked:    user.Blocked,
		Experience: user.Experience,
	}
}
