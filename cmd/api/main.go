package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cricmates/backend/internal/config"
	"cricmates/backend/internal/domain/club"
	"cricmates/backend/internal/domain/matches"
	"cricmates/backend/internal/domain/members"
	"cricmates/backend/internal/domain/requests"
	"cricmates/backend/internal/domain/stats"
	"cricmates/backend/internal/domain/subscription"
	"cricmates/backend/internal/domain/tournaments"
	"cricmates/backend/internal/domain/transactions"
	"cricmates/backend/internal/firebase"
	apihttp "cricmates/backend/internal/http"
	"cricmates/backend/internal/platform"
	"cricmates/backend/internal/session"
	"cricmates/backend/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("client init failed: %v", err)
	}
	defer clients.Firestore.Close()

	settings := platform.Load(ctx, clients.Firestore)

	blobs := storage.NewService(clients.Storage, cfg.StorageBucket, cfg.SignedURLServiceAccountEmail)
	sessions := session.NewMemoryStore()

	// Repositories
	clubRepo := club.NewRepo(clients.Firestore)
	orderRepo := subscription.NewRepo(clients.Firestore)
	memberRepo := members.NewRepo(clients.Firestore)
	matchRepo := matches.NewRepo(clients.Firestore)
	txRepo := transactions.NewRepo(clients.Firestore)
	requestRepo := requests.NewRepo(clients.Firestore)
	tournamentRepo := tournaments.NewRepo(clients.Firestore)

	// Services
	txSvc := transactions.NewService(txRepo)
	membersSvc := members.NewService(memberRepo, txSvc, blobs)
	matchesSvc := matches.NewService(matchRepo, memberRepo, txSvc, blobs)
	requestsSvc := requests.NewService(requestRepo, membersSvc)
	tournamentsSvc := tournaments.NewService(tournamentRepo, matchesSvc)
	clubSvc := club.NewService(clubRepo, settings.Pricing)
	subSvc := subscription.NewService(clubRepo, orderRepo, settings.Pricing)
	resolver := club.NewResolver(clubRepo, subSvc, sessions, cfg.ReservedSubdomains, cfg.GenericHostSuffixes)
	watcher := requests.NewWatcher(clients.Firestore)
	statsSvc := stats.NewService(membersSvc, matchesSvc, txSvc, requestsSvc,
		cfg.ActivityWindow, stats.Thresholds{Low: cfg.LowBalance, Critical: cfg.CriticalBalance})

	// Stripe checkout (optional - only if configured)
	var checkout *subscription.Checkout
	if cfg.StripeSecretKey != "" {
		checkout = subscription.NewCheckout(subSvc, subscription.CheckoutConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
		})
		log.Println("Stripe checkout initialized")
	} else {
		log.Println("STRIPE_SECRET_KEY not set, online payments disabled")
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:            cfg,
		AuthClient:     clients.Auth,
		Sessions:       sessions,
		Resolver:       resolver,
		ClubSvc:        clubSvc,
		SubSvc:         subSvc,
		Checkout:       checkout,
		MembersSvc:     membersSvc,
		MatchesSvc:     matchesSvc,
		TxSvc:          txSvc,
		RequestsSvc:    requestsSvc,
		Watcher:        watcher,
		TournamentsSvc: tournamentsSvc,
		StatsSvc:       statsSvc,
		Blobs:          blobs,
		Settings:       settings,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("API listening on :%s (project=%s)", cfg.Port, cfg.ProjectID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
