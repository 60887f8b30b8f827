package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/redzonehq/redzone/internal/adapters/dateparse"
	"github.com/redzonehq/redzone/internal/adapters/httpapi"
	tomlstore "github.com/redzonehq/redzone/internal/adapters/store/toml"
	"github.com/redzonehq/redzone/internal/application"
	"github.com/redzonehq/redzone/internal/domain"
	"github.com/redzonehq/redzone/internal/ports"
)

const (
	listenKey        = "serve.listen"
	nearestSearchKey = "features.nearest_search"
	localUserKey     = "user.id"
	defaultsDuration = "defaults.duration"
	defaultsInterval = "defaults.interval"
	logLevelKey      = "log.level"
)

type app struct {
	turns      *application.TurnService
	bootstrap  *application.Bootstrap
	repo       *tomlstore.Repository
	server     *httpapi.Server
	logger     *slog.Logger
	userID     domain.UserID
	listenAddr string
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetDefault(listenKey, "127.0.0.1:8035")
	cfg.SetDefault(nearestSearchKey, false)
	cfg.SetDefault(localUserKey, "local")
	cfg.SetDefault(logLevelKey, "info")
	cfg.SetEnvPrefix("REDZONE")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	repo, err := tomlstore.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire zone repository: %w", err)
	}

	logger := newLogger(cfg.GetString(logLevelKey))

	defaults := application.ProvisionDefaults{
		Duration: cfg.GetInt(defaultsDuration),
		Interval: cfg.GetInt(defaultsInterval),
	}

	bootstrap := application.NewBootstrap(repo, repo, defaults, logger)
	zones := application.NewZoneService(repo, dateparse.New(), cfg.GetBool(nearestSearchKey), logger)
	turns := application.NewTurnService(bootstrap, application.NewRouter(zones), ports.SystemClock{}, logger)

	return &app{
		turns:      turns,
		bootstrap:  bootstrap,
		repo:       repo,
		server:     httpapi.NewServer(turns, logger),
		logger:     logger,
		userID:     domain.UserID(cfg.GetString(localUserKey)),
		listenAddr: cfg.GetString(listenKey),
	}, nil
}

// resolveUser prefers a command's --user flag over the configured local
// identity.
func (a *app) resolveUser(flag string) domain.UserID {
	if flag != "" {
		return domain.UserID(flag)
	}
	return a.userID
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
