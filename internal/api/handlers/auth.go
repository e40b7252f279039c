package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clipstream/backend/internal/api/middleware"
	"github.com/clipstream/backend/internal/config"
	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/service"
)

// Multipart uploads are buffered up to this many bytes in memory before
// spilling to disk.
const maxUploadMemory = 32 << 20

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         domain.PublicProfile `json:"user"`
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	avatar, avatarFile, err := formUpload(r, "avatar")
	if err != nil {
		writeServiceError(w, "AuthHandler.Register", err)
		return
	}
	cover, coverFile, err := formUpload(r, "coverImage")
	if err != nil {
		closeUploads(avatarFile)
		writeServiceError(w, "AuthHandler.Register", err)
		return
	}
	defer closeUploads(avatarFile, coverFile)

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		FullName:   r.FormValue("fullName"),
		Email:      r.FormValue("email"),
		Username:   r.FormValue("username"),
		Password:   r.FormValue("password"),
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		writeServiceError(w, "AuthHandler.Register", err)
		return
	}

	h.setAuthCookies(w, result)
	respond(w, http.StatusCreated, h.authResponse(result), "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, "AuthHandler.Login", err)
		return
	}

	h.setAuthCookies(w, result)
	respond(w, http.StatusOK, h.authResponse(result), "Logged in successfully")
}

// Refresh rotates the refresh token. The token comes from the request
// body or the refreshToken cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	token := req.RefreshToken
	if token == "" {
		if cookie, err := r.Cookie("refreshToken"); err == nil {
			token = cookie.Value
		}
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		writeServiceError(w, "AuthHandler.Refresh", err)
		return
	}

	h.setAuthCookies(w, result)
	respond(w, http.StatusOK, h.authResponse(result), "Tokens refreshed")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, "AuthHandler.Logout", err)
		return
	}

	h.clearAuthCookies(w)
	respond(w, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "AuthHandler.Me", err)
		return
	}

	respond(w, http.StatusOK, user.Public(), "Current user fetched")
}

func (h *AuthHandler) authResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:         result.User.Public(),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, result *service.AuthResult) {
	secure := h.cfg.Environment == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cfg.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.cfg.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}
