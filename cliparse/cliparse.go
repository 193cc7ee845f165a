package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/danielhkuo/nft-contest/db"
	"github.com/danielhkuo/nft-contest/pda"
)

const (
	DefaultPort        = 3318
	DefaultSQLitePath  = "nft-contest.db"
	DefaultEnvFileName = ".env"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	ProgramID      solana.PublicKey
	MetricsEnabled bool
	Verbose        bool
}

// ParseFlags parses args, loads the env file and fills unset values from
// the environment.
func ParseFlags(args []string) (Config, error) {
	var (
		cfg       Config
		programID string
		envFile   string
		noMetrics bool
	)

	flags := flag.NewFlagSet("nft-contest", flag.ContinueOnError)

	flags.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	flags.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL or SQLite file path")
	flags.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&programID, "program-id", "", "Program id used to derive record addresses")
	flags.BoolVar(&noMetrics, "no-metrics", false, "Disable the /metrics endpoint")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&envFile, "env-file", DefaultEnvFileName, "Environment file to load")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	if cfg.DatabaseType != db.TypeSQLite && cfg.DatabaseType != db.TypePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == db.TypePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLitePath
	}

	if programID == "" {
		programID = os.Getenv("PROGRAM_ID")
	}
	if programID == "" {
		cfg.ProgramID = pda.DefaultProgramID
	} else {
		key, err := solana.PublicKeyFromBase58(programID)
		if err != nil {
			return Config{}, fmt.Errorf("invalid program id %q: %w", programID, err)
		}
		cfg.ProgramID = key
	}

	cfg.MetricsEnabled = !noMetrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" && !flags.Changed("no-metrics") {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.New("invalid METRICS_ENABLED env variable")
		}
		cfg.MetricsEnabled = enabled
	}

	if !cfg.Verbose && os.Getenv("VERBOSE") != "" {
		cfg.Verbose, _ = strconv.ParseBool(os.Getenv("VERBOSE"))
	}

	return cfg, nil
}
