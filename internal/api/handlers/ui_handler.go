package handlers

import (
	"net/http"

	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/service"
)

type SetThemeRequestBody struct {
	Theme models.Theme `json:"theme"`
}

type UIHandler struct {
	notifier     *service.Notifier
	themeService *service.ThemeService
}

func NewUIHandler(notifier *service.Notifier, themeService *service.ThemeService) *UIHandler {
	return &UIHandler{
		notifier:     notifier,
		themeService: themeService,
	}
}

func (h *UIHandler) ListToasts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"toasts": h.notifier.Active(),
	})
}

func (h *UIHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	if !h.notifier.Remove(r.PathValue("id")) {
		writeErrorMessage(w, http.StatusNotFound, "toast not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTheme resolves the theme; ?system=dark reports the system preference.
func (h *UIHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.writeTheme(w, r)
}

func (h *UIHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var reqBody SetThemeRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	if err := h.themeService.Set(reqBody.Theme); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeTheme(w, r)
}

func (h *UIHandler) writeTheme(w http.ResponseWriter, r *http.Request) {
	preference, err := h.themeService.Preference()
	if err != nil {
		writeError(w, r, err)
		return
	}

	resolved, err := h.themeService.Resolve(r.URL.Query().Get("system") == "dark")
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"preference": preference,
		"theme":      resolved,
	})
}
