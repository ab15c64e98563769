package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/recommend"
	"github.com/spigell/jobmatch/internal/render"
)

const (
	app       = "jobmatch"
	envPrefix = "JOBMATCH"
)

type Config struct {
	Limit        int    `mapstructure:"limit"`
	SimilarLimit int    `mapstructure:"similar-limit"`
	Output       string `mapstructure:"output"`
	Catalog      string `mapstructure:"catalog"`
	User         int64  `mapstructure:"user"`
	Debug        bool   `mapstructure:"debug"`
	JSON         bool   `mapstructure:"json"`
}

var (
	// Used for flags.
	cfgFile string
	// Reported by the first command that needs the config.
	errConfig error

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmatch ranks job postings for a user and finds similar postings",
		Long: `jobmatch scores job postings against a user's declared skills and the jobs
they applied to or saved. Input is a JSON document read from a file or stdin,
or a SQLite catalog. Results are written to stdout as JSON or as a table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command. Failures are reported on stdout in the
// same envelope as results.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		_ = render.Failure(rootCmd.OutOrStdout(), err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", render.FormatJSON, "result format: json or table")
	rootCmd.PersistentFlags().String("catalog", "", "SQLite catalog to load jobs and user activity from instead of --input")
	rootCmd.PersistentFlags().Int64("user", 0, "user id in the catalog")

	for _, key := range []string{"debug", "json", "output", "catalog", "user"} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	viper.SetDefault("limit", recommend.DefaultLimit)
	viper.SetDefault("similar-limit", recommend.DefaultSimilarLimit)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			errConfig = fmt.Errorf("reading config: %w", err)
		}
	}
}

func getConfig() (*Config, error) {
	if errConfig != nil {
		return nil, errConfig
	}

	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// session carries what every action needs for one invocation.
type session struct {
	ctx    context.Context
	config *Config
	logger *zap.Logger
	out    io.Writer
	in     io.Reader
	input  string
}

func newSession(cmd *cobra.Command, action string) (*session, error) {
	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	log, err := logger.New(config.JSON, config.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	log = logger.WithRun(log, uuid.NewString(), action)

	log.Debug("starting the jobmatch",
		zap.String("version", version),
		zap.Any("config", config),
	)

	input := ""
	if f := cmd.Flags().Lookup("input"); f != nil {
		input = f.Value.String()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &session{
		ctx:    ctx,
		config: config,
		logger: log,
		out:    cmd.OutOrStdout(),
		in:     cmd.InOrStdin(),
		input:  input,
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

func (s *session) renderer() (*render.Renderer, error) {
	return render.New(s.out, s.config.Output)
}
