package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/brandreach/ambassador-ui-api/config"
	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	"github.com/brandreach/ambassador-ui-api/internal/adapters/idp"
	redisstore "github.com/brandreach/ambassador-ui-api/internal/adapters/redis"
	"github.com/brandreach/ambassador-ui-api/internal/adapters/stubauth"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/observability/statsd"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
	"github.com/brandreach/ambassador-ui-api/internal/service"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Sessions    *service.SessionService
	Guard       *service.GuardService
	Admins      *service.AdminService
	Ambassadors *service.AmbassadorService
	Receipts    *service.ReceiptService
	Reset       ports.PasswordResetSender

	// Metrics is the shared StatsD client. Close it on shutdown.
	Metrics *statsd.Client
}

// ServiceDeps contains the infrastructure dependencies for NewServices.
type ServiceDeps struct {
	Config *config.AppConfig
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// backendPorts groups the authority-facing ports, built either against
// the real backend or the in-process stub.
type backendPorts struct {
	gateway     ports.AuthGateway
	admins      ports.AdminDirectory
	ambassadors ports.AmbassadorDirectory
	receipts    ports.ReceiptReviewer
	reset       ports.PasswordResetSender
}

// NewServices wires adapters and services from configuration.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsClient, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "ambassadorui",
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("init statsd client: %w", err)
	}

	bp, err := buildBackendPorts(cfg, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	store := redisstore.NewCredentialStoreWithOptions(deps.Redis, cfg.Session.KeyPrefix, cfg.Session.TTL)

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Store:   store,
		Gateway: bp.gateway,
		Logger:  logger,
		Metrics: metricsClient,
	})
	guard := service.NewGuardService(service.GuardServiceOptions{
		Gateway:  bp.gateway,
		Sessions: sessions,
		Logger:   logger,
		Metrics:  metricsClient,
	})

	return ServiceContainer{
		Sessions: sessions,
		Guard:    guard,
		Admins: service.NewAdminService(service.AdminServiceOptions{
			Directory: bp.admins,
			Logger:    logger,
		}),
		Ambassadors: service.NewAmbassadorService(service.AmbassadorServiceOptions{
			Directory: bp.ambassadors,
			Logger:    logger,
		}),
		Receipts: service.NewReceiptService(service.ReceiptServiceOptions{
			Reviewer: bp.receipts,
			Logger:   logger,
		}),
		Reset:   bp.reset,
		Metrics: metricsClient,
	}, nil
}

func buildBackendPorts(cfg *config.AppConfig, logger *slog.Logger) (backendPorts, error) {
	if cfg.Backend.Mode == config.BackendModeStub {
		return buildStubPorts(cfg, logger)
	}
	return buildRealPorts(cfg, logger)
}

func buildRealPorts(cfg *config.AppConfig, logger *slog.Logger) (backendPorts, error) {
	client, err := backend.NewClient(backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		Timeout:    cfg.Backend.Timeout,
		MaxRetries: cfg.Backend.MaxRetries,
		RetryDelay: cfg.Backend.RetryDelay,
		Logger:     logger,
	})
	if err != nil {
		return backendPorts{}, fmt.Errorf("init backend client: %w", err)
	}

	if !cfg.IDP.Configured() {
		return backendPorts{}, fmt.Errorf("IDP_BASE_URL and IDP_API_KEY are required when BACKEND_MODE=%s", config.BackendModeReal)
	}
	reset, err := idp.NewSender(idp.Config{
		BaseURL: cfg.IDP.BaseURL,
		APIKey:  cfg.IDP.APIKey,
		Timeout: cfg.IDP.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return backendPorts{}, fmt.Errorf("init password reset sender: %w", err)
	}

	return backendPorts{
		gateway:     backend.NewGateway(client),
		admins:      backend.NewAdminDirectory(client),
		ambassadors: backend.NewAmbassadorDirectory(client),
		receipts:    backend.NewReceiptReviewer(client),
		reset:       reset,
	}, nil
}

func buildStubPorts(cfg *config.AppConfig, logger *slog.Logger) (backendPorts, error) {
	users := stubUsers(cfg.Backend.Stub)

	gateway, err := stubauth.NewGateway(stubauth.Config{
		Secret:   []byte(cfg.Backend.Stub.Secret),
		TokenTTL: cfg.Backend.Stub.TokenTTL,
		Users:    users,
	})
	if err != nil {
		return backendPorts{}, fmt.Errorf("init stub gateway: %w", err)
	}

	logger.Warn("backend stub mode enabled; all data is in-memory and resets on restart")

	directory := stubauth.NewDirectory()
	return backendPorts{
		gateway:     gateway,
		admins:      directory,
		ambassadors: directory,
		receipts:    directory,
		reset:       stubauth.NewResetSender(users, logger),
	}, nil
}

// stubUsers seeds one account per role so every dashboard is reachable
// in stub mode.
func stubUsers(cfg config.StubAuthConfig) []stubauth.User {
	return []stubauth.User{
		{Email: "superadmin@example.com", Password: cfg.Password, Role: domainauth.RoleSuperadmin, FirstName: "Root", LastName: "Admin"},
		{Email: "admin@example.com", Password: cfg.Password, Role: domainauth.RoleAdmin, FirstName: "Ops", LastName: "Admin"},
		{Email: "ambassador@example.com", Password: cfg.Password, Role: domainauth.RoleAmbassador, FirstName: "Field", LastName: "Ambassador"},
	}
}
