package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

type authHandler struct {
	svc service.AuthService
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name == "" || req.Password == "" {
		writeError(w, r, domain.NewValidationError("name", "name and password are required"))
		return
	}

	res, err := h.svc.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
