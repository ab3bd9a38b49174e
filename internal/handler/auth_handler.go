package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type AuthHandler struct {
	bank   *Bank
	logger *zap.Logger
}

func NewAuthHandler(b *Bank, l *zap.Logger) *AuthHandler {
	return &AuthHandler{
		bank:   b,
		logger: l,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Validation failed", ValidationErrors(err)...)
		return
	}

	token, expires, err := h.bank.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			h.logger.Info("login rejected", zap.String("username", req.Username))
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		} else {
			h.logger.Error("issuing session token", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to login user")
		}
		return
	}

	respondWithJson(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Authenticated",
		Data: loginResponse{
			Token:     token,
			ExpiresAt: expires.UTC().Format(time.RFC3339),
		},
	})
}
