package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/TWRT/todo-client/internal/client/todoapi"
	"github.com/TWRT/todo-client/internal/pkg/logger"
	"github.com/TWRT/todo-client/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps a service or client error onto a response. An ended
// session sends the browser back to the sign-in page.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *todoapi.RequestError

	switch {
	case errors.Is(err, todoapi.ErrAuthenticationRequired):
		http.Redirect(w, r, service.SignInPath, http.StatusSeeOther)
	case errors.Is(err, todoapi.ErrAuthenticationFailed):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidTheme):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &reqErr):
		writeErrorMessage(w, reqErr.Status, reqErr.Message)
	default:
		logger.Errorf(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
		writeErrorMessage(w, http.StatusBadGateway, "Something went wrong. Please try again.")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return false
	}
	return true
}

func pathId(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorMessage(w, http.StatusBadRequest, "invalid task id: "+r.PathValue("id"))
		return 0, false
	}
	return id, true
}
