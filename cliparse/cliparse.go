package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/dropout-cube/cube"
)

const (
	DefaultPort          = 5000
	DefaultDashboardPort = 8050
	DefaultAPIURL        = "http://localhost:5000"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	FactLayout   string
	Migrate      bool
	Seed         bool
}

type DashboardConfig struct {
	Port   int
	APIURL string
}

// ParseFlags validates the query service flags
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("cubeapi", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres, pgx or sqlite)")
	fs.StringVar(&cfg.FactLayout, "fact-layout", "", "Fact table layout (named or packed)")
	fs.BoolVar(&cfg.Migrate, "migrate", false, "Create the named-layout schema on start")
	fs.BoolVar(&cfg.Seed, "seed", false, "Load sample data on start")
	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	port, err := portOrEnv(cfg.Port, DefaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.Port = port

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	dialect, err := cube.DialectFor(cfg.DatabaseType)
	if err != nil {
		return Config{}, err
	}

	if cfg.FactLayout == "" {
		cfg.FactLayout = os.Getenv("FACT_LAYOUT")
		if cfg.FactLayout == "" {
			cfg.FactLayout = cube.LayoutNamed
		}
	}
	source, err := cube.SourceFor(cfg.FactLayout)
	if err != nil {
		return Config{}, err
	}
	if _, err := cube.NewBuilder(dialect, source); err != nil {
		return Config{}, err
	}

	if !cfg.Migrate {
		if cfg.Migrate, err = boolEnv("MIGRATE"); err != nil {
			return Config{}, err
		}
	}
	if !cfg.Seed {
		if cfg.Seed, err = boolEnv("SEED"); err != nil {
			return Config{}, err
		}
	}
	if cfg.Seed && cfg.FactLayout != cube.LayoutNamed {
		return Config{}, errors.New("sample data requires the named fact layout")
	}

	return cfg, nil
}

// ParseDashboardFlags validates the visualization service flags
func ParseDashboardFlags(args []string) (DashboardConfig, error) {
	var cfg DashboardConfig
	var envFile string

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.APIURL, "api", "", "Cube API base URL")
	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return DashboardConfig{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return DashboardConfig{}, err
	}

	port, err := portOrEnv(cfg.Port, DefaultDashboardPort)
	if err != nil {
		return DashboardConfig{}, err
	}
	cfg.Port = port

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("CUBE_API_URL")
		if cfg.APIURL == "" {
			cfg.APIURL = DefaultAPIURL
		}
	}

	return cfg, nil
}

// loadEnvFile reads a dotenv file if it exists. Variables already set in
// the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func portOrEnv(port, def int) (int, error) {
	if port != 0 {
		return port, nil
	}
	portStr := os.Getenv("PORT")
	if portStr == "" {
		return def, nil
	}
	p, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, errors.New("invalid PORT env variable")
	}
	return p, nil
}

func boolEnv(name string) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid " + name + " env variable")
	}
	return b, nil
}
