package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katatrina/workhub-BE/api"
	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/katatrina/workhub-BE/internal/escrow"
	"github.com/katatrina/workhub-BE/internal/mailer"
	"github.com/katatrina/workhub-BE/internal/notification"
	"github.com/katatrina/workhub-BE/internal/notify"
	"github.com/katatrina/workhub-BE/internal/payment"
	"github.com/katatrina/workhub-BE/internal/token"
	"github.com/katatrina/workhub-BE/internal/util"
	"github.com/katatrina/workhub-BE/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	_ "github.com/katatrina/workhub-BE/docs"
)

//	@title			Workhub API
//	@version		1.0.0
//	@description	Escrow confirmation and notification email API for the Workhub freelance marketplace

//	@host		localhost:8080
//	@BasePath	/v1
//	@schemes	http https

//	@securityDefinitions.apikey	accessToken
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	if config.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Msg("configurations loaded successfully ✅")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create connection pool
	connPool, err := pgxpool.New(ctx, config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(ctx)
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")
	defer connPool.Close()

	store := db.NewStore(connPool)

	redisDb := redis.NewClient(&redis.Options{
		Addr: config.RedisServerAddress,
	})
	defer redisDb.Close()

	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token maker 😣")
	}
	log.Info().Msg("Token maker created successfully ✅")

	payments := newPaymentStatusLookup(config)
	log.Info().Str("provider", config.PaymentProvider).Msg("Payment provider client created successfully ✅")

	sender, err := newEmailSender(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create email sender 😣")
	}
	if !sender.Configured() {
		log.Warn().Str("provider", sender.Name()).Msg("email provider is not configured, notification emails will be skipped")
	}

	dispatcher := notify.NewDispatcher(notify.Config{
		From:         config.EmailFrom,
		DefaultTitle: config.DefaultNotificationTitle,
	}, tokenMaker, notify.NewStoreDirectory(store), sender)

	var escrowOpts []escrow.ServiceOption
	if config.EscrowNotificationsEnabled {
		redisOpt := asynq.RedisClientOpt{
			Addr: config.RedisServerAddress,
		}

		taskDistributor := worker.NewTaskDistributor(redisOpt)
		defer taskDistributor.Close()

		taskProcessor, writer := startTaskProcessor(ctx, config, redisOpt)
		defer writer.Close()
		defer taskProcessor.Shutdown()

		escrowOpts = append(escrowOpts, escrow.WithNotifier(taskDistributor))
	}

	escrowService := escrow.NewService(store, payments, escrowOpts...)

	if config.EscrowReconcileInterval > 0 {
		reconciler, err := escrow.NewReconciler(escrowService, config.EscrowReconcileInterval, config.EscrowReconcileMinAge)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create escrow reconciler 😣")
		}

		if err = reconciler.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start escrow reconciler 😣")
		}
		defer reconciler.Stop()
		log.Info().Dur("interval", config.EscrowReconcileInterval).Msg("escrow reconciler started ✅")
	}

	runHTTPServer(ctx, config, store, redisDb, escrowService, dispatcher)
	log.Info().Msg("HTTP server stopped, releasing resources")
}

func newPaymentStatusLookup(config util.Config) payment.StatusLookup {
	if config.PaymentProvider == util.PaymentProviderZalopay {
		return payment.NewZalopayClient(config.ZalopayBaseURL, config.ZalopayAppID, config.ZalopayKey1, config.ProviderTimeout)
	}

	return payment.NewStripeClient(config.StripeBaseURL, config.StripeSecretKey, config.ProviderTimeout)
}

func newEmailSender(config util.Config) (mailer.Sender, error) {
	if config.EmailProvider == util.EmailProviderSMTP {
		return mailer.NewSMTPSender(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword)
	}

	return mailer.NewResendSender(config.ResendBaseURL, config.ResendAPIKey, config.ProviderTimeout), nil
}

func startTaskProcessor(ctx context.Context, config util.Config, redisOpt asynq.RedisClientOpt) (*worker.RedisTaskProcessor, *notification.FirestoreWriter) {
	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.FirebaseCredentialsFile))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create firebase app 😣")
	}

	writer, err := notification.NewFirestoreWriter(ctx, firebaseApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create firestore client 😣")
	}

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, writer)
	if err = taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
	log.Info().Msg("start task processor ✅")

	return taskProcessor, writer
}

// runHTTPServer blocks until ctx is canceled or the server fails.
func runHTTPServer(ctx context.Context, config util.Config, store db.Store, redisDb *redis.Client, escrowService *escrow.Service, dispatcher *notify.Dispatcher) {
	server, err := api.NewServer(&config, store, redisDb, escrowService, dispatcher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(ctx, config.HTTPServerAddress)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server stopped with error 😣")
	}
}
