package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"greenLeanAPI/internal/types/tracking"
	"greenLeanAPI/services"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
	planService     *services.PlanService
	userService     *services.UserService
}

func NewTrackingHandler(trackingService *services.TrackingService, planService *services.PlanService, userService *services.UserService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		planService:     planService,
		userService:     userService,
	}
}

func (h *TrackingHandler) AddNutritionLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	var req tracking.AddNutritionLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.trackingService.AddNutritionLog(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *TrackingHandler) AddWaterLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	var req tracking.AddWaterLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.trackingService.AddWaterLog(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *TrackingHandler) AddWorkoutLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	var req tracking.AddWorkoutLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.trackingService.AddWorkoutLog(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// GetLogs returns the user's recent logs of every kind. ?days=N bounds the
// window, default 30.
func (h *TrackingHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			respondWithError(w, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}
	since := time.Now().AddDate(0, 0, -days)

	nutrition, err := h.trackingService.GetNutritionLogs(ctx, userID, since)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get logs")
		return
	}
	water, err := h.trackingService.GetWaterLogs(ctx, userID, since)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get logs")
		return
	}
	workouts, err := h.trackingService.GetWorkoutLogs(ctx, userID, since)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get logs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"nutrition": nutrition,
		"water":     water,
		"workouts":  workouts,
	})
}

func (h *TrackingHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	logID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	table := r.URL.Query().Get("kind")
	switch table {
	case "nutrition":
		table = "nutrition_logs"
	case "water":
		table = "water_intake_logs"
	case "workout":
		table = "workout_logs"
	default:
		respondWithError(w, http.StatusBadRequest, "kind must be nutrition, water or workout")
		return
	}

	if err := h.trackingService.DeleteLog(ctx, userID, logID, table); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete log")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetDashboard serves the progress dashboard. Diet adherence is scored against
// the diet plan's calories; without a plan it scores as unlogged.
func (h *TrackingHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	goalCalories := 0
	if plan, err := h.planService.GetDietPlan(ctx, userID); err == nil {
		goalCalories = plan.DailyCalories
	} else if !errors.Is(err, services.ErrNoPlan) {
		respondWithError(w, http.StatusInternalServerError, "Failed to load diet plan")
		return
	}

	dashboard, err := h.trackingService.GetDashboard(ctx, userID, goalCalories)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}
