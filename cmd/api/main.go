// @title Field Booking API
// @version 1.0
// @description Sports field booking: browse fields, reserve time windows, manage reservations and reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldbooking/config"
	_ "fieldbooking/docs"
	authadapter "fieldbooking/internal/adapters/auth"
	emailadapter "fieldbooking/internal/adapters/email"
	deliveryhttp "fieldbooking/internal/delivery/http"
	"fieldbooking/internal/delivery/http/controllers"
	"fieldbooking/internal/delivery/http/middleware"
	"fieldbooking/internal/domain"
	"fieldbooking/internal/repository/postgres"
	"fieldbooking/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	fieldRepo := postgres.NewFieldRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	renderer, err := emailadapter.NewTemplateRenderer()
	if err != nil {
		return err
	}
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	clock := domain.SystemClock{}
	tokens := authadapter.NewJWT(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(authadapter.DefaultCost)
	guard := services.NewReservationGuard(postgres.NewReservationTxRunner(db))

	authService := services.NewAuthService(userRepo, roleRepo, hasher, tokens, cfg.JWTExpiry, emailService, clock, logger)
	userService := services.NewUserService(userRepo, clock)
	fieldService := services.NewFieldService(fieldRepo, clock, cfg.RequestTimeout)
	reservationService := services.NewReservationService(guard, reservationRepo, fieldRepo, userRepo, emailService, clock, logger, cfg.RequestTimeout)
	reportService := services.NewReportService(reportRepo, cfg.RequestTimeout)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:        controllers.NewAuthController(logger, authService),
		User:        controllers.NewUserController(logger, userService),
		Field:       controllers.NewFieldController(logger, fieldService),
		Reservation: controllers.NewReservationController(logger, reservationService),
		Report:      controllers.NewReportController(logger, reportService),
	}, tokens, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
