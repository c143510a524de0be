package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"greenLeanAPI/internal/types/challenge"
	"greenLeanAPI/middleware"
	"greenLeanAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	userService      *services.UserService
}

func NewChallengeHandler(challengeService *services.ChallengeService, userService *services.UserService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		userService:      userService,
	}
}

// ListChallenges serves the challenge feed with aggregate stats. When a valid
// token is attached the caller's own participation is included per challenge.
func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var userID *uuid.UUID
	if clerkID, ok := middleware.GetClerkID(ctx); ok {
		if id, err := h.userService.IDByClerkID(ctx, clerkID); err == nil {
			userID = &id
		}
	}

	challenges, err := h.challengeService.ListChallenges(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list challenges")
		return
	}

	respondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	challengeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	participant, err := h.challengeService.Join(ctx, userID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			respondWithError(w, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, services.ErrAlreadyJoined):
			respondWithError(w, http.StatusConflict, "Already joined this challenge")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to join challenge")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, participant)
}

func (h *ChallengeHandler) QuitChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	challengeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.challengeService.Quit(ctx, userID, challengeID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to quit challenge")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ChallengeHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	challengeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req challenge.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	participant, completed, err := h.challengeService.UpdateProgress(ctx, userID, challengeID, req.NewProgress)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			respondWithError(w, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, services.ErrNotAParticipant):
			respondWithError(w, http.StatusNotFound, "Not a challenge participant")
		case errors.Is(err, services.ErrProgressLocked):
			respondWithError(w, http.StatusConflict, "Progress already recorded for this period")
		case errors.Is(err, services.ErrConcurrentUpdate):
			respondWithError(w, http.StatusConflict, "Progress was updated concurrently, retry")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update progress")
		}
		return
	}

	if completed {
		middleware.CountChallengeCompletion()
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"participant": participant,
		"completed":   completed,
	})
}

func (h *ChallengeHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	challengeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	participant, err := h.challengeService.GetParticipant(ctx, userID, challengeID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get progress")
		return
	}

	// null when the user never joined
	respondWithJSON(w, http.StatusOK, participant)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
