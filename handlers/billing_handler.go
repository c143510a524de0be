package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"greenLeanAPI/internal/types/subscription"
	"greenLeanAPI/middleware"
	"greenLeanAPI/services"
)

type BillingHandler struct {
	billingService *services.BillingService
	userService    *services.UserService
}

func NewBillingHandler(billingService *services.BillingService, userService *services.UserService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		userService:    userService,
	}
}

// CreateCheckoutSession starts a pro subscription checkout and returns the
// hosted Stripe URL for the client to open.
func (h *BillingHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var req subscription.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		respondWithError(w, http.StatusBadRequest, "success_url and cancel_url are required")
		return
	}

	resp, err := h.billingService.CreateCheckoutSession(ctx, u.ID, u.Email, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *BillingHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(ctx, w, h.userService)
	if !ok {
		return
	}

	sub, err := h.billingService.GetSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoSubscription) {
			respondWithError(w, http.StatusNotFound, "No subscription")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get subscription")
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}
