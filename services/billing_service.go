package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	stripesub "github.com/stripe/stripe-go/v76/subscription"

	"greenLeanAPI/internal/types/subscription"
)

var ErrNoSubscription = errors.New("no subscription")

type BillingService struct {
	db          *pgxpool.Pool
	userService *UserService
}

func NewBillingService(db *pgxpool.Pool, userService *UserService) *BillingService {
	return &BillingService{db: db, userService: userService}
}

// CreateCheckoutSession starts a Stripe subscription checkout for the pro
// plan. The internal user id rides along in the session metadata so the
// webhook can attribute the completed purchase.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, email string, req *subscription.CheckoutRequest) (*subscription.CheckoutResponse, error) {
	priceID := os.Getenv("STRIPE_PRICE_ID")
	if priceID == "" {
		return nil, fmt.Errorf("STRIPE_PRICE_ID is not set")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		CustomerEmail:     stripe.String(email),
		ClientReferenceID: stripe.String(userID.String()),
	}
	params.AddMetadata("user_id", userID.String())

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &subscription.CheckoutResponse{CheckoutURL: sess.URL}, nil
}

// FetchStripeSubscription pulls the current subscription state from Stripe.
// Webhook payloads can arrive out of order, so handlers re-fetch instead of
// trusting the event body for period ends.
func (s *BillingService) FetchStripeSubscription(subscriptionID string) (*stripe.Subscription, error) {
	sub, err := stripesub.Get(subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stripe subscription: %w", err)
	}
	return sub, nil
}

// UpsertSubscription stores the subscription row keyed on the Stripe
// subscription id and syncs the user's is_pro flag.
func (s *BillingService) UpsertSubscription(ctx context.Context, sub *subscription.Subscription) error {
	query := `
	INSERT INTO subscriptions (id, user_id, stripe_customer_id, stripe_subscription_id, stripe_price_id, status, current_period_end, cancel_at_period_end, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (stripe_subscription_id) DO UPDATE
	SET stripe_customer_id = EXCLUDED.stripe_customer_id,
	    stripe_price_id = EXCLUDED.stripe_price_id,
	    status = EXCLUDED.status,
	    current_period_end = EXCLUDED.current_period_end,
	    cancel_at_period_end = EXCLUDED.cancel_at_period_end,
	    updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	_, err := s.db.Exec(ctx, query,
		uuid.New(), sub.UserID, sub.StripeCustomerID, sub.StripeSubscriptionID,
		sub.StripePriceID, sub.Status, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return s.userService.SetProStatus(ctx, sub.UserID, isActiveStatus(sub.Status))
}

// UpdateSubscriptionStatus applies a status change for a subscription we
// already know about. Unknown subscription ids are ignored; the checkout
// completed event has not landed yet.
func (s *BillingService) UpdateSubscriptionStatus(ctx context.Context, sub *subscription.Subscription) error {
	query := `
	UPDATE subscriptions
	SET status = $1, current_period_end = $2, cancel_at_period_end = $3, updated_at = $4
	WHERE stripe_subscription_id = $5
	RETURNING user_id
	`

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, query,
		sub.Status, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd, time.Now(), sub.StripeSubscriptionID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return s.userService.SetProStatus(ctx, userID, isActiveStatus(sub.Status))
}

func (s *BillingService) GetSubscription(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	query := `
	SELECT id, user_id, stripe_customer_id, stripe_subscription_id, stripe_price_id, status, current_period_end, cancel_at_period_end, created_at, updated_at
	FROM subscriptions
	WHERE user_id = $1
	ORDER BY updated_at DESC
	LIMIT 1
	`

	sub := &subscription.Subscription{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&sub.ID, &sub.UserID, &sub.StripeCustomerID, &sub.StripeSubscriptionID,
		&sub.StripePriceID, &sub.Status, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSubscription
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func isActiveStatus(status string) bool {
	return status == string(stripe.SubscriptionStatusActive) || status == string(stripe.SubscriptionStatusTrialing)
}
