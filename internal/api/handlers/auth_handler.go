package handlers

import (
	"net/http"

	"github.com/TWRT/todo-client/internal/service"
)

type SignInRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var reqBody SignInRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	result, err := h.authService.SignIn(r.Context(), reqBody.Email, reqBody.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.signedIn(w, r, result.User)
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var form service.SignUpForm
	if !decodeBody(w, r, &form) {
		return
	}

	result, err := h.authService.SignUp(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.signedIn(w, r, result.User)
}

func (h *AuthHandler) signedIn(w http.ResponseWriter, r *http.Request, user any) {
	redirect, err := h.authService.RedirectAfterLogin()
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"redirect": redirect,
	})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.SignOut(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"redirect": service.SignInPath,
	})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	info, err := h.authService.Session()
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// RequireAuth sends unauthenticated requests to the sign-in page.
func (h *AuthHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// only pages can be returned to after sign-in
		path := ""
		if r.Method == http.MethodGet {
			path = r.URL.Path
		}
		ok, err := h.authService.RequireAuth(path)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !ok {
			http.Redirect(w, r, service.SignInPath, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
