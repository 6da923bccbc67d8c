package http

import (
	"encoding/json"
	"net/http"

	domainauth "github.com/allinone-hr/wfh-backend-go/internal/domain/auth"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/jwt"
	authservice "github.com/allinone-hr/wfh-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	svc        *authservice.Service
	jwtService jwt.Service
}

func NewAuthHandler(svc *authservice.Service, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{svc: svc, jwtService: jwtService}
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req domainauth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, refreshToken, refreshExpiresAt, err := h.svc.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt))
	response.Success(w, resp)
}

func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, domainauth.ErrInvalidToken)
		return
	}

	resp, err := h.svc.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		h.svc.Logout(r.Context(), cookie.Value)
	}

	// Expire the cookie client-side as well.
	expired := h.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	response.SuccessWithMessage(w, "Logged out", nil)
}
