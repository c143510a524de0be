package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"greenLeanAPI/internal/types/notification"
	"greenLeanAPI/services"
)

type NotificationHandler struct {
	notifService *services.NotificationService
	userService  *services.UserService
}

func NewNotificationHandler(notifService *services.NotificationService, userService *services.UserService) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		userService:  userService,
	}
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	var req notification.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.notifService.RegisterDevice(ctx, userID, &req); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *NotificationHandler) UnregisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.notifService.UnregisterDevice(ctx, userID, req.Token); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to unregister device")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
