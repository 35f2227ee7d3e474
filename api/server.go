package api

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/katatrina/workhub-BE/internal/notify"
	"github.com/katatrina/workhub-BE/internal/util"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

var (
	notificationCORSMethods = []string{"POST", "OPTIONS"}
	notificationCORSHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
)

// EscrowConfirmer moves the transaction behind a settled payment intent into escrow.
type EscrowConfirmer interface {
	Confirm(ctx context.Context, paymentIntentID string) (*db.Transaction, error)
}

// NotificationDispatcher authenticates callers and sends notification emails on their behalf.
type NotificationDispatcher interface {
	Authenticate(accessToken string) (string, error)
	Dispatch(ctx context.Context, userID string, req notify.Request) (*notify.Result, error)
}

type Server struct {
	router        *gin.Engine
	config        *util.Config
	dbStore       db.Store
	redisClient   *redis.Client
	escrowService EscrowConfirmer
	dispatcher    NotificationDispatcher
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(config *util.Config, store db.Store, redisClient *redis.Client, escrowService EscrowConfirmer, dispatcher NotificationDispatcher) (*Server, error) {
	if escrowService == nil || dispatcher == nil {
		return nil, fmt.Errorf("escrow service and notification dispatcher are required")
	}

	server := &Server{
		config:        config,
		dbStore:       store,
		redisClient:   redisClient,
		escrowService: escrowService,
		dispatcher:    dispatcher,
	}

	server.setupRouter()
	log.Info().Msg("HTTP routes registered successfully ✅")

	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(requestIDMiddleware())

	v1 := router.Group("/v1")

	v1.GET("/healthz", server.healthCheck)

	escrowGroup := v1.Group("/escrow")
	{
		escrowGroup.POST("/confirm", idempotencyMiddleware(server.redisClient), server.confirmEscrow)
	}

	notificationGroup := v1.Group("/notifications", cors.New(server.corsConfig()))
	{
		notificationGroup.POST("/email", server.sendNotificationEmail)
		notificationGroup.OPTIONS("/email", server.preflightNotificationEmail)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server.router = router
	return router
}

func (server *Server) corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods: notificationCORSMethods,
		AllowHeaders: notificationCORSHeaders,
	}

	if len(server.config.AllowedOrigins) == 0 || slices.Contains(server.config.AllowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = server.config.AllowedOrigins
	}

	return config
}

// Start runs the HTTP server on a specific address until ctx is canceled,
// then waits up to shutdownTimeout for in-flight requests.
func (server *Server) Start(ctx context.Context, address string) error {
	httpServer := &http.Server{
		Addr:    address,
		Handler: server.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
