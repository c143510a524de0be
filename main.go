package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stripe/stripe-go/v76"

	"greenLeanAPI/handlers"
	"greenLeanAPI/internal/notification"
	"greenLeanAPI/internal/workers"
	"greenLeanAPI/middleware"
	"greenLeanAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	userService         *services.UserService
	rewardService       *services.RewardService
	notificationService *services.NotificationService
	challengeService    *services.ChallengeService
	trackingService     *services.TrackingService
	planService         *services.PlanService
	billingService      *services.BillingService
	adminService        *services.AdminService
	fcmService          *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set, billing endpoints will fail")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	userService = services.NewUserService(dbPool)
	rewardService = services.NewRewardService(dbPool)
	notificationService = services.NewNotificationService(dbPool)
	challengeService = services.NewChallengeService(dbPool, rewardService, notificationService)
	trackingService = services.NewTrackingService(dbPool)
	planService = services.NewPlanService(dbPool)
	billingService = services.NewBillingService(dbPool, userService)
	adminService = services.NewAdminService(dbPool)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService, rewardService)
	challengeHandler := handlers.NewChallengeHandler(challengeService, userService)
	trackingHandler := handlers.NewTrackingHandler(trackingService, planService, userService)
	planHandler := handlers.NewPlanHandler(planService, userService)
	billingHandler := handlers.NewBillingHandler(billingService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)
	webhookHandler := handlers.NewWebhookHandler(userService, billingService)
	adminHandler := handlers.NewAdminHandler(adminService, userService)

	workers.StartStreakWorker(dbPool, notificationService, 15*time.Minute)

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "greenLean-api"}`))
	}).Methods("GET")

	standardRouter.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")
	standardRouter.HandleFunc("/webhooks/stripe", webhookHandler.HandleStripeWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	// Public challenge feed; attaches user progress when a token is present.
	api.Handle("/challenges", middleware.OptionalAuthMiddleware(http.HandlerFunc(challengeHandler.ListChallenges))).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/rewards", userHandler.GetRewards).Methods("GET")
	protected.HandleFunc("/badges", userHandler.ListBadges).Methods("GET")

	protected.HandleFunc("/challenges/{id}/join", challengeHandler.JoinChallenge).Methods("POST")
	protected.HandleFunc("/challenges/{id}/quit", challengeHandler.QuitChallenge).Methods("DELETE")
	protected.HandleFunc("/challenges/{id}/progress", challengeHandler.UpdateProgress).Methods("PUT")
	protected.HandleFunc("/challenges/{id}/progress", challengeHandler.GetMyProgress).Methods("GET")

	protected.HandleFunc("/logs/nutrition", trackingHandler.AddNutritionLog).Methods("POST")
	protected.HandleFunc("/logs/water", trackingHandler.AddWaterLog).Methods("POST")
	protected.HandleFunc("/logs/workout", trackingHandler.AddWorkoutLog).Methods("POST")
	protected.HandleFunc("/logs", trackingHandler.GetLogs).Methods("GET")
	protected.HandleFunc("/logs/{id}", trackingHandler.DeleteLog).Methods("DELETE")
	protected.HandleFunc("/dashboard", trackingHandler.GetDashboard).Methods("GET")

	protected.HandleFunc("/quiz", planHandler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/quiz/result", planHandler.GetQuizResult).Methods("GET")
	protected.HandleFunc("/plans/diet", planHandler.GetDietPlan).Methods("GET")
	protected.HandleFunc("/plans/workout", planHandler.GetWorkoutPlan).Methods("GET")

	protected.HandleFunc("/billing/checkout", billingHandler.CreateCheckoutSession).Methods("POST")
	protected.HandleFunc("/billing/subscription", billingHandler.GetSubscription).Methods("GET")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/unregister-device", notificationHandler.UnregisterDevice).Methods("POST")

	protected.HandleFunc("/admin/analytics", adminHandler.GetAnalytics).Methods("GET")
	protected.HandleFunc("/admin/challenges", adminHandler.CreateChallenge).Methods("POST")
	protected.HandleFunc("/admin/challenges/{id}", adminHandler.UpdateChallenge).Methods("PUT")
	protected.HandleFunc("/admin/challenges/{id}", adminHandler.DeactivateChallenge).Methods("DELETE")
	protected.HandleFunc("/admin/badges", adminHandler.CreateBadge).Methods("POST")
	protected.HandleFunc("/admin/badges/{id}", adminHandler.DeleteBadge).Methods("DELETE")
	protected.HandleFunc("/admin/settings", adminHandler.GetSettings).Methods("GET")
	protected.HandleFunc("/admin/settings", adminHandler.UpdateSettings).Methods("PUT")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
