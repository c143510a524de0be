package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"greenLeanAPI/internal/types/challenge"
	"greenLeanAPI/internal/types/reward"
	"greenLeanAPI/internal/types/settings"
	"greenLeanAPI/middleware"
	"greenLeanAPI/services"
)

type AdminHandler struct {
	adminService *services.AdminService
	userService  *services.UserService
}

func NewAdminHandler(adminService *services.AdminService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
	}
}

// requireAdmin gates every admin route on users.is_admin.
func (h *AdminHandler) requireAdmin(ctx context.Context, w http.ResponseWriter) bool {
	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return false
	}

	isAdmin, err := h.userService.IsAdmin(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, http.StatusForbidden, "Admin access required")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to check permissions")
		}
		return false
	}
	if !isAdmin {
		respondWithError(w, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}

func (h *AdminHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	analytics, err := h.adminService.GetAnalytics(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	respondWithJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req challenge.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Requirements.Target <= 0 {
		respondWithError(w, http.StatusBadRequest, "title and a positive requirements.target are required")
		return
	}

	ch, err := h.adminService.CreateChallenge(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create challenge")
		return
	}

	respondWithJSON(w, http.StatusCreated, ch)
}

func (h *AdminHandler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	challengeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req challenge.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.adminService.UpdateChallenge(ctx, challengeID, &req); err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			respondWithError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update challenge")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) DeactivateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	challengeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeactivateChallenge(ctx, challengeID); err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			respondWithError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to deactivate challenge")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) CreateBadge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req reward.CreateBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	badge, err := h.adminService.CreateBadge(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create badge")
		return
	}

	respondWithJSON(w, http.StatusCreated, badge)
}

func (h *AdminHandler) DeleteBadge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	badgeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteBadge(ctx, badgeID); err != nil {
		respondWithError(w, http.StatusNotFound, "Badge not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	s, err := h.adminService.GetSettings(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get settings")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s, err := h.adminService.UpdateSettings(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}
