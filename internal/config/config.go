package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/poofware/widget-service/internal/repositories"
	"github.com/poofware/widget-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	StoreDriver string
	DBUrl       string
	SQLitePath  string
	AutoMigrate bool

	// Feature-flag snapshots (env defaults, overridden by LaunchDarkly when configured)
	LDFlag_SeedDbWithTestData bool
	LDFlag_CORSHighSecurity   bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	defaultAppPort    = "8080"
	defaultSQLitePath = "data/widgets.db"
)

// build-time overrides, set with -ldflags
var (
	AppName             = "widget-service"
	LDServerContextKey  = "widget-service"
	LDServerContextKind = "service"
)

// LoadConfig reads the process environment and exits on invalid settings.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if sdkKey := os.Getenv("LD_SDK_KEY"); sdkKey != "" {
		if err := cfg.applyLaunchDarklyFlags(sdkKey); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to load LaunchDarkly flags")
		}
	} else {
		utils.Logger.Debug("LD_SDK_KEY not set; using env flag defaults")
	}

	utils.Logger.Infof("Loaded config for %s (%s, store=%s)", cfg.AppName, cfg.Env, cfg.StoreDriver)
	return cfg
}

// FromEnv builds a Config from getenv without touching external services.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := getenv("ENV")
	if env == "" {
		env = "dev"
	}
	appPort := getenv("APP_PORT")
	if appPort == "" {
		appPort = defaultAppPort
	}
	if _, err := strconv.Atoi(appPort); err != nil {
		return nil, fmt.Errorf("APP_PORT %q is not a number", appPort)
	}
	appURL := getenv("APP_URL_FROM_ANYWHERE")
	if appURL == "" {
		appURL = "http://localhost:" + appPort
	}

	driver := getenv("STORE_DRIVER")
	if driver == "" {
		driver = repositories.StoreDriverMemory
	}
	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		Env:              env,
		AppPort:          appPort,
		AppUrl:           appURL,
		StoreDriver:      driver,
		DBUrl:            getenv("DB_URL"),
		SQLitePath:       getenv("SQLITE_PATH"),
	}

	switch driver {
	case repositories.StoreDriverMemory:
	case repositories.StoreDriverSQLite:
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = defaultSQLitePath
		}
	case repositories.StoreDriverPostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DB_URL env var is required for STORE_DRIVER=%s", driver)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	var err error
	if cfg.AutoMigrate, err = boolEnv(getenv, "AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.LDFlag_SeedDbWithTestData, err = boolEnv(getenv, "SEED_DB_WITH_TEST_DATA", false); err != nil {
		return nil, err
	}
	if cfg.LDFlag_CORSHighSecurity, err = boolEnv(getenv, "CORS_HIGH_SECURITY", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyLaunchDarklyFlags(sdkKey string) error {
	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()
	if !ldClient.Initialized() {
		return fmt.Errorf("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	seed, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, c.LDFlag_SeedDbWithTestData)
	if err != nil {
		return fmt.Errorf("seed_db_with_test_data flag: %w", err)
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", seed)

	corsHigh, err := ldClient.BoolVariation("cors_high_security", ctx, c.LDFlag_CORSHighSecurity)
	if err != nil {
		return fmt.Errorf("cors_high_security flag: %w", err)
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHigh)

	c.LDFlag_SeedDbWithTestData = seed
	c.LDFlag_CORSHighSecurity = corsHigh
	return nil
}

func boolEnv(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}
