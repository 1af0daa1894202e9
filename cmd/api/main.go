package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/contracthq/contracts-backend-go/internal/config"
	appHTTP "github.com/contracthq/contracts-backend-go/internal/handler/http"
	"github.com/contracthq/contracts-backend-go/internal/pkg/cron"
	"github.com/contracthq/contracts-backend-go/internal/pkg/database"
	"github.com/contracthq/contracts-backend-go/internal/pkg/jwt"
	"github.com/contracthq/contracts-backend-go/internal/pkg/oauth"
	"github.com/contracthq/contracts-backend-go/internal/pkg/storage"
	"github.com/contracthq/contracts-backend-go/internal/repository/postgresql"
	analyticsService "github.com/contracthq/contracts-backend-go/internal/service/analytics"
	authService "github.com/contracthq/contracts-backend-go/internal/service/auth"
	companyService "github.com/contracthq/contracts-backend-go/internal/service/company"
	contractService "github.com/contracthq/contracts-backend-go/internal/service/contract"
	fileService "github.com/contracthq/contracts-backend-go/internal/service/file"
	requestService "github.com/contracthq/contracts-backend-go/internal/service/request"
	userService "github.com/contracthq/contracts-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "minio":
		fileStorage, err = storage.NewMinioStorage(storage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			log.Fatal("Failed to initialize minio storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := fileService.NewService(fileStorage)
	authSvc := authService.NewAuthService(db, userRepo, jwtSvc, refreshTokenRepo)
	companySvc := companyService.NewService(companyRepo)
	contractSvc := contractService.NewService(contractRepo, companyRepo, userRepo)
	statusSvc := contractService.NewStatusService(contractRepo, companyRepo)
	requestSvc := requestService.NewService(db, requestRepo, contractRepo)
	analyticsSvc := analyticsService.NewService(analyticsRepo, companyRepo)
	userSvc := userService.NewService(userRepo, contractRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	contractHandler := appHTTP.NewContractHandler(contractSvc, statusSvc, fileSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	if cfg.Cron.RunInProcessJobs {
		scheduler := cron.NewScheduler()
		jobs := cron.NewContractJobs(statusSvc, refreshTokenRepo)
		if err := jobs.RegisterJobs(scheduler); err != nil {
			log.Fatal("Failed to register scheduled jobs:", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL:     cfg.App.FrontendURL,
			Env:             cfg.App.Env,
			CronSecretToken: cfg.Cron.SecretToken,
		},
		jwtSvc,
		authHandler,
		contractHandler,
		requestHandler,
		companyHandler,
		analyticsHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
