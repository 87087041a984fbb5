package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"edulink/internal/config"
	"edulink/internal/email/noop"
	sgemail "edulink/internal/email/sendgrid"
	sesemail "edulink/internal/email/ses"
	"edulink/internal/handler"
	"edulink/internal/middleware"
	"edulink/internal/pdf"
	"edulink/internal/port"
	"edulink/internal/repository/postgres"
	"edulink/internal/router"
	"edulink/internal/service"
	s3storage "edulink/internal/storage/s3"
)

// @title Edulink API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	middleware.InitRollbar(&cfg.Rollbar)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	ecoleRepo := postgres.NewEcoleRepo(db)
	intervenantRepo := postgres.NewIntervenantRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	challengeRepo := postgres.NewChallengeRepo(db)
	missionRepo := postgres.NewMissionRepo(db)
	collaborationRepo := postgres.NewCollaborationRepo(db)
	declarationRepo := postgres.NewDeclarationRepo(db)
	factureRepo := postgres.NewFactureRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	sender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	notifier := service.NewNotificationService(sender, cfg.Email.FrontendURL)
	authSvc := service.NewAuthService(userRepo, ecoleRepo, intervenantRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(userRepo, authSvc)
	passwordResetSvc := service.NewPasswordResetService(userRepo, notifier, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	ecoleSvc := service.NewEcoleService(ecoleRepo)
	intervenantSvc := service.NewIntervenantService(intervenantRepo, documentRepo, notifier)
	documentSvc := service.NewDocumentService(documentRepo, intervenantRepo, s3Client, &cfg.S3)
	challengeSvc := service.NewChallengeService(challengeRepo, intervenantRepo, notifier)
	missionSvc := service.NewMissionService(missionRepo, intervenantRepo)
	collaborationSvc := service.NewCollaborationService(collaborationRepo, ecoleRepo, intervenantRepo, notifier)
	declarationSvc := service.NewDeclarationService(declarationRepo, cfg.Billing)
	factureSvc := service.NewFactureService(factureRepo, ecoleRepo, intervenantRepo, s3Client,
		pdf.NewFactureRenderer(), notifier, cfg.Billing, cfg.S3.Bucket)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, intervenantRepo)
	statsSvc := service.NewStatsService(service.StatsRepos{
		Stats:          statsRepo,
		Intervenants:   intervenantRepo,
		Documents:      documentRepo,
		Challenges:     challengeRepo,
		Missions:       missionRepo,
		Collaborations: collaborationRepo,
		Declarations:   declarationRepo,
		Factures:       factureRepo,
		Favorites:      favoriteRepo,
	})

	// Initialize handlers
	if err := handler.SetupValidation(); err != nil {
		return fmt.Errorf("failed to set up request validation: %w", err)
	}
	r := router.Setup(authSvc, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, registrationSvc, passwordResetSvc),
		User:          handler.NewUserHandler(userSvc),
		Ecole:         handler.NewEcoleHandler(ecoleSvc),
		Intervenant:   handler.NewIntervenantHandler(intervenantSvc),
		Document:      handler.NewDocumentHandler(documentSvc),
		Challenge:     handler.NewChallengeHandler(challengeSvc),
		Mission:       handler.NewMissionHandler(missionSvc),
		Collaboration: handler.NewCollaborationHandler(collaborationSvc),
		Declaration:   handler.NewDeclarationHandler(declarationSvc),
		Facture:       handler.NewFactureHandler(factureSvc),
		Favorite:      handler.NewFavoriteHandler(favoriteSvc),
		Stats:         handler.NewStatsHandler(statsSvc),
		Health:        handler.NewHealthHandler(db),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	overdue := service.NewOverdueWorker(factureRepo, factureSvc, service.OverdueWorkerConfig{
		Interval:    cfg.Billing.OverdueSweepInterval,
		Concurrency: cfg.Billing.NotifyConcurrency,
	})
	go overdue.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins, r),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	overdue.Wait()
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return sesemail.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("sendgrid provider requires EDULINK_EMAIL_SENDGRID_API_KEY")
		}
		return sgemail.NewSendgridSender(cfg.SendgridAPIKey, cfg.FromAddress, cfg.FromName), nil
	default:
		log.Printf("WARNING: email provider %q, emails are logged and dropped", cfg.Provider)
		return noop.NewNoopSender(), nil
	}
}
