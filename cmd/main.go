package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/avoronin/devconnect-server/internal/api/http/context"
	"github.com/avoronin/devconnect-server/internal/api/http/router"
	httpServer "github.com/avoronin/devconnect-server/internal/api/http/server"
	"github.com/avoronin/devconnect-server/internal/config"
	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
	"github.com/avoronin/devconnect-server/internal/repository/postgres"
	"github.com/avoronin/devconnect-server/internal/security"
	"github.com/avoronin/devconnect-server/internal/server"
	"github.com/avoronin/devconnect-server/internal/service"
	storage "github.com/avoronin/devconnect-server/internal/storage/minio"
	"github.com/avoronin/devconnect-server/internal/token"

	_ "github.com/joho/godotenv/autoload"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	postRepo := postgres.NewPostRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLSeconds)*time.Second)
	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	ctxMgr := httpctx.NewManager()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	tokenService := service.NewTokenService(tokenManager, logger)
	userService := service.NewUser(userRepo, storageClient, logger)
	profileService := service.NewProfile(profileRepo, userRepo, storageClient, logger)
	postService := service.NewPost(postRepo, userRepo, logger)

	srv := registerHTTPServer(
		logger,
		authService,
		userService,
		profileService,
		postService,
		tokenService,
		ctxMgr,
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	userService *service.User,
	profileService *service.Profile,
	postService *service.Post,
	tokenService *service.TokenService,
	ctxMgr model.ContextManager,
	addr string,
) *httpServer.HTTPServer {
	r := router.New(authService, userService, profileService, postService, tokenService, ctxMgr, logger)
	app := r.Register()

	return httpServer.NewHTTPServer(app, addr)
}
