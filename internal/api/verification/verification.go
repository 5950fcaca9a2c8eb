package verification

import (
	"lootbox_backend/internal/api"
	dto "lootbox_backend/internal/api/dto/verification"
	"lootbox_backend/internal/converter"
	"lootbox_backend/internal/service"
	"lootbox_backend/pkg/req"
	"lootbox_backend/pkg/resp"
	"net/http"
)

type HandlerDeps struct {
	Serv service.VerificationService
}

type Handler struct {
	serv service.VerificationService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Verify пересчитывает розыгрыш по раскрытым данным. Авторизация не нужна
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.VerifyRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Verify(converter.ToVerifyRequest(payload))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToVerifyResponse(*result))
}
