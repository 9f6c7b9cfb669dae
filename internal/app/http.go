package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpytaylo/simple-messenger/internal/accounts"
	"github.com/dpytaylo/simple-messenger/internal/auth/credentials"
	"github.com/dpytaylo/simple-messenger/internal/auth/handler"
	"github.com/dpytaylo/simple-messenger/internal/auth/provider"
	"github.com/dpytaylo/simple-messenger/internal/auth/provider/google"
	"github.com/dpytaylo/simple-messenger/internal/chat"
	"github.com/dpytaylo/simple-messenger/internal/config"
	"github.com/dpytaylo/simple-messenger/internal/kv"
	"github.com/dpytaylo/simple-messenger/internal/middleware"
	"github.com/dpytaylo/simple-messenger/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	accountStore := accounts.NewPostgresStore(infra.DB)
	kvStore := kv.NewRedisStore(infra.Redis)

	tokens, err := session.NewTokenSource()
	if err != nil {
		return nil, nil, err
	}
	sessionIssuer := session.NewIssuer(tokens, kvStore, cfg.SessionTTL)

	credentialService := credentials.NewService(accountStore, cfg.MaxPasswordSize, cfg.MaxNameSize)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleIssuer,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.RedirectBaseURL+"/oauth/google/authorized",
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authHandler := handler.NewHandler(
		registry,
		credentialService,
		accountStore,
		sessionIssuer,
		kvStore,
		cfg.OAuthStateTTL,
	)

	sessionResolver := middleware.NewSessionResolver(kvStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinResolveSession(sessionResolver))

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth())

	api.GET("/me", func(c *gin.Context) {
		accountID, _ := middleware.AccountIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"account_id": accountID.String(),
		})
	})

	chat.NewHandler().RegisterRoutes(api.Group("/chat"))

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
