package opening

import (
	"lootbox_backend/internal/api"
	"lootbox_backend/internal/converter"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/service"
	"lootbox_backend/pkg/resp"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.OpeningService
}

type Handler struct {
	serv service.OpeningService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Open открывает кейс за счет текущего пользователя
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	caseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	result, err := h.serv.Open(r.Context(), userID, caseID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOpenResponse(*result))
}

// Odds - опубликованные вероятности кейса
func (h *Handler) Odds(w http.ResponseWriter, r *http.Request) {
	caseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	odds, err := h.serv.Odds(r.Context(), caseID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOddsResponse(caseID, odds))
}

func (h *Handler) GetDraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.serv.GetDraw(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDrawResponse(*rec))
}

// ListDraws - история розыгрышей, ?limit=N
func (h *Handler) ListDraws(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.serv.ListDraws(r.Context(), userID, limit)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDrawListResponse(records))
}
