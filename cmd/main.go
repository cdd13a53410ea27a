package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codelab.net/internal/adapter/crypto"
	"gitlab.com/codelab.net/internal/adapter/judge0"
	"gitlab.com/codelab.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codelab.net/internal/adapter/postgres/sheetrepository"
	"gitlab.com/codelab.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codelab.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codelab.net/internal/adapter/redis/tokenstore"
	"gitlab.com/codelab.net/internal/config"
	auth2 "gitlab.com/codelab.net/internal/core/services/auth"
	"gitlab.com/codelab.net/internal/core/services/judge"
	"gitlab.com/codelab.net/internal/core/services/problem"
	"gitlab.com/codelab.net/internal/core/services/sheet"
	"gitlab.com/codelab.net/internal/core/services/submission"
	"gitlab.com/codelab.net/internal/core/services/user"
	logger2 "gitlab.com/codelab.net/internal/global/logger"
	"gitlab.com/codelab.net/internal/handlers"
	http2 "gitlab.com/codelab.net/internal/http"
)

func main() {
	InitReader()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting codelab service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	userPort := userrepository.New(db, logger)
	problemPort := problemrepository.New(db, logger)
	submissionPort := submissionrepository.New(db, logger)
	sheetPort := sheetrepository.New(db, logger)
	tokenStore := tokenstore.New(redisClient, logger)
	remoteJudge := judge0.NewClient(sysCfg.JudgeConfig, logger)

	// PRIMARY PORTS
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// SERVICES
	judgeSvc := judge.NewJudgeService(remoteJudge, logger, sysCfg.JudgeConfig)
	problemSvc := problem.NewProblemService(problemPort, judgeSvc, logger)
	submissionSvc := submission.NewSubmissionService(submissionPort, problemPort, judgeSvc, logger)
	sheetSvc := sheet.NewSheetService(sheetPort, problemPort, logger)
	userSvc := user.NewUserService(userPort, logger)
	ggAuth := auth2.NewGoogleAuthService(userPort, jwtProvider, sysCfg.GGAuthConfig)
	localAuth := auth2.NewLocalAuthService(userPort, tokenStore, jwtProvider)

	serviceProvider := http2.NewServiceProvider(
		problemSvc, submissionSvc, sheetSvc, userSvc,
		ggAuth, localAuth, localAuth,
	)
	middleware := handlers.New(jwtProvider, userPort)

	httServer := http2.NewServer(
		sysCfg.HTTPPort, "codelab", *serviceProvider,
		middleware, sysCfg.GGAuthConfig, logger,
	)
	if err := httServer.Init(); err != nil {
		panic(err)
	}

	ctxBg := context.Background()
	httServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(sysCfg *config.AppConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", sysCfg.PostgresConfig.Url)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
