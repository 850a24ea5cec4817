package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"quizbox/internal/app"
	"quizbox/internal/domain"
)

// APIHandler exposes the polled JSON surface the host and player
// front ends consume. The front ends poll /api/state twice per second;
// everything here is a thin translation layer over the game service.
type APIHandler struct {
	service *app.GameService
	log     zerolog.Logger
}

func NewAPIHandler(service *app.GameService, log zerolog.Logger) *APIHandler {
	return &APIHandler{service: service, log: log}
}

// Register wires the API routes into the router.
func (h *APIHandler) Register(router *httprouter.Router) {
	router.GET("/api/join", h.Join)
	router.GET("/api/answer", h.Answer)
	router.GET("/api/state", h.State)
	router.GET("/api/host/:cmd", h.HostCommand)
	router.POST("/api/host/:cmd", h.HostCommand)
	router.GET("/qr", h.QR)
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errResponse struct {
	OK  bool   `json:"ok"`
	Err string `json:"err"`
}

type joinResponse struct {
	OK       bool   `json:"ok"`
	PlayerID string `json:"pid"`
	Icon     string `json:"icon"`
	Name     string `json:"name"`
}

func (h *APIHandler) Join(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pin := r.URL.Query().Get("pin")
	name := r.URL.Query().Get("name")
	if pin == "" || name == "" {
		writeJSON(w, http.StatusBadRequest, errResponse{Err: "missing pin or name"})
		return
	}

	result, err := h.service.Join(r.Context(), pin, name)
	if err != nil {
		writeJSON(w, statusFor(err), errResponse{Err: err.Error()})
		return
	}
	h.log.Info().Str("player", result.PlayerID).Str("name", result.Name).Msg("player joined")
	writeJSON(w, http.StatusOK, joinResponse{
		OK:       true,
		PlayerID: result.PlayerID,
		Icon:     result.Icon,
		Name:     result.Name,
	})
}

func (h *APIHandler) Answer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	playerID := r.URL.Query().Get("pid")
	opt, err := strconv.Atoi(r.URL.Query().Get("opt"))
	if playerID == "" || err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Err: "missing pid or opt"})
		return
	}

	if err := h.service.SubmitAnswer(r.Context(), playerID, opt); err != nil {
		writeJSON(w, statusFor(err), errResponse{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// State returns the host view, or the player view when a pid is given.
func (h *APIHandler) State(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Cache-Control", "no-store")

	if playerID := r.URL.Query().Get("pid"); playerID != "" {
		view, err := h.service.PlayerSnapshot(r.Context(), playerID)
		if err != nil {
			writeJSON(w, statusFor(err), errResponse{Err: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, view)
		return
	}
	writeJSON(w, http.StatusOK, h.service.HostSnapshot(r.Context()))
}

func (h *APIHandler) HostCommand(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	cmd := domain.HostCommand(p.ByName("cmd"))
	if err := h.service.HostCommand(r.Context(), cmd); err != nil {
		writeJSON(w, statusFor(err), errResponse{Err: err.Error()})
		return
	}
	h.log.Info().Str("cmd", string(cmd)).Msg("host command applied")
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the domain error taxonomy onto HTTP statuses. Every
// rejection is a typed error; nothing here can panic the server.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRoomCode),
		errors.Is(err, domain.ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyAnswered),
		errors.Is(err, domain.ErrNotAcceptingAnswers),
		errors.Is(err, domain.ErrInvalidPhaseForCommand),
		errors.Is(err, domain.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidOption),
		errors.Is(err, domain.ErrUnknownCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
