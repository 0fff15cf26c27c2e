package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/placementportal/internal/app/auth"
	appControllers "github.com/yigit/placementportal/internal/app/controllers"
	appMigrations "github.com/yigit/placementportal/internal/app/migrations"
	appRepos "github.com/yigit/placementportal/internal/app/repositories"
	appRoutes "github.com/yigit/placementportal/internal/app/routes"
	appServices "github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/config"
	"github.com/yigit/placementportal/internal/db"
	appMiddleware "github.com/yigit/placementportal/internal/middleware"
	pkgAuth "github.com/yigit/placementportal/internal/pkg/auth"
	"github.com/yigit/placementportal/internal/pkg/email"
	"github.com/yigit/placementportal/internal/pkg/filestorage"
	"github.com/yigit/placementportal/internal/pkg/helpers"
	"github.com/yigit/placementportal/internal/pkg/identity"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

// FilesPath is the URL prefix the blob storage directory is served under
const FilesPath = "/files"

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService     appServices.StudentService
	EmployerService    appServices.EmployerService
	EmployerOpsService appServices.EmployerOpsService
	PortalService      appServices.PortalService
	ResumeService      appServices.ResumeService
	Controllers        appRoutes.Controllers
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Identity           *identity.Provider
	AuthzService       *appAuth.AuthorizationService
	FileStorage        *filestorage.LocalStorage
	Redis              *redis.Client
	Logger             zerolog.Logger
}

// Close releases connections held by the dependencies
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies the SQL files in the configured migrations directory
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, logger.Component("migrations")).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// setupRevocationStore picks Redis when configured and reachable, otherwise
// the revoked_tokens table
func setupRevocationStore(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (identity.RevocationStore, *redis.Client) {
	if cfg.Redis.Addr == "" {
		lgr.Info().Msg("Session revocation backed by Postgres")
		return repos.TokenRepository, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, falling back to Postgres session revocation")
		_ = client.Close()
		return repos.TokenRepository, nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Session revocation backed by Redis")
	return identity.NewRedisRevocationStore(client), client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.PublicBaseURL()+FilesPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	revocations, redisClient := setupRevocationStore(cfg, deps.Repos, lgr)
	deps.Redis = redisClient

	deps.Identity = identity.NewProvider(deps.Repos.IdentityRepository, revocations, deps.JWTService, logger.Component("identity"))
	deps.Identity.OnSignOut(func(_ context.Context, identityID, email string) {
		lgr.Info().Str("identityID", identityID).Str("email", email).Msg("Session signed out")
	})

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.PublicBaseURL(),
	}, logger.Component("email"))

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.JobRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.InterviewRepository,
		deps.Repos.PlacementRepository,
	)

	deps.StudentService = appServices.NewStudentService(
		database,
		deps.Repos.DirectoryRepository,
		deps.Identity,
		deps.Repos.StudentRepository,
		mailer,
		logger.Component("students"),
	)
	deps.EmployerService = appServices.NewEmployerService(
		database,
		deps.Repos.DirectoryRepository,
		deps.Identity,
		deps.Repos.EmployerRepository,
		mailer,
		logger.Component("employers"),
	)
	deps.EmployerOpsService = appServices.NewEmployerOpsService(
		deps.Repos.JobRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.InterviewRepository,
		deps.Repos.PlacementRepository,
		deps.Repos.StudentRepository,
		deps.Repos.EmployerRepository,
		deps.AuthzService,
		mailer,
		appServices.EmployerOpsConfig{StrictTransitions: cfg.Applications.StrictTransitions},
		logger.Component("employer-ops"),
	)
	deps.PortalService = appServices.NewPortalService(
		deps.Repos.JobRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.InterviewRepository,
		deps.Repos.PlacementRepository,
		logger.Component("portal"),
	)
	deps.ResumeService = appServices.NewResumeService(deps.Repos.StudentRepository, deps.FileStorage, logger.Component("resumes"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Identity)

	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.StudentService, deps.EmployerService, lgr),
		Student:  appControllers.NewStudentController(deps.StudentService, deps.PortalService, deps.ResumeService, lgr),
		Employer: appControllers.NewEmployerController(deps.EmployerService, deps.EmployerOpsService, lgr),
		Job:      appControllers.NewJobController(deps.PortalService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))

	corsConfig := cors.DefaultConfig()
	origins := cfg.CORSOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
