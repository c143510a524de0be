package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"greenLeanAPI/internal/types/plan"
	"greenLeanAPI/services"
)

type PlanHandler struct {
	planService *services.PlanService
	userService *services.UserService
}

func NewPlanHandler(planService *services.PlanService, userService *services.UserService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		userService: userService,
	}
}

func (h *PlanHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	var answers plan.QuizAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.planService.SubmitQuiz(ctx, userID, answers)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

func (h *PlanHandler) GetDietPlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	p, err := h.planService.GetDietPlan(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoPlan) {
			respondWithError(w, http.StatusNotFound, "No diet plan yet, take the quiz first")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get diet plan")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *PlanHandler) GetWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	p, err := h.planService.GetWorkoutPlan(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoPlan) {
			respondWithError(w, http.StatusNotFound, "No workout plan yet, take the quiz first")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get workout plan")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *PlanHandler) GetQuizResult(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	result, err := h.planService.GetLatestQuizResult(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoPlan) {
			respondWithError(w, http.StatusNotFound, "No quiz submitted yet")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get quiz result")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
