package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", enableCORS(h.handleListSessions))
	mux.HandleFunc("/debug/pile", enableCORS(h.handleDumpPile))
}

// /debug/sessions - сводка по активным партиям
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Sessions())
}

// /debug/pile?session=<id> - полный снимок партии, как его видит клиент
func (h *DebugHandler) handleDumpPile(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	session := h.Service.GetSession(id)
	if session == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	// Снимок делает горутина сессии, ждем ее недолго
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	snap, err := session.Snapshot(ctx)
	if err != nil {
		status := http.StatusGatewayTimeout
		if errors.Is(err, engine.ErrSessionClosed) {
			status = http.StatusGone
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, snap)
}
