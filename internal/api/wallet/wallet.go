package wallet

import (
	"lootbox_backend/internal/api"
	dto "lootbox_backend/internal/api/dto/wallet"
	"lootbox_backend/internal/converter"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/service"
	"lootbox_backend/pkg/req"
	"lootbox_backend/pkg/resp"
	"net/http"
)

type HandlerDeps struct {
	Serv service.WalletService
}

type Handler struct {
	serv service.WalletService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.serv.Deposit(r.Context(), userID, payload.Amount)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWalletResponse(*user))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.serv.GetWallet(r.Context(), userID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWalletResponse(*user))
}
