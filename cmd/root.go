package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eklix/mysql-faker/internal/bootstrap"
	"github.com/eklix/mysql-faker/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var Version = "1.0.0"

type rootOptions struct {
	cfgFile   string
	dontClean bool
	v         *viper.Viper
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"host":      "host",
	"port":      "port",
	"user":      "user",
	"passwd":    "password",
	"dbname":    "database",
	"number":    "rows",
	"auto":      "auto_create",
	"table":     "table",
	"log-level": "log_level",
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "mysql-faker",
		Short: "Seed a MySQL table with fake WordPress style posts",
		Long: `
mysql-faker connects to a MySQL compatible server, makes sure the target
database exists and fills the posts table with generated product rows.

Environment variables (overridden by the matching flags):
  DB_USER   database user to connect with
  DB_PASS   database password
  DB_NAME   database to connect to or create
  SQL_HOST  MySQL server address
  DB_PORT   MySQL server port

Variables from .env and .env.local are loaded first.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./faker.config.{json,yaml})")
	flags.StringP("host", "H", config.DefaultHost, "target MySQL database address")
	flags.IntP("port", "P", config.DefaultPort, "port to connect to")
	flags.StringP("user", "u", "", "database user to connect with")
	flags.StringP("passwd", "p", "", "password for the database user")
	flags.StringP("dbname", "d", "", "database name to connect to or create if it doesn't exist")
	flags.IntP("number", "n", config.DefaultRows, "number of products to create")
	flags.BoolP("auto", "a", false, "automatically create the database if it's missing")
	flags.BoolVarP(&opts.dontClean, "dontclean", "c", false, "DON'T clean out the table before inserting new random data")
	flags.StringP("table", "t", config.DefaultTable, "table to fill")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	config.SetDefaults(o.v)

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = o.v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return bindErr
	}
	if o.dontClean {
		o.v.Set("clean", false)
	}

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: failed to read config file %s: %w", config.ErrInvalid, o.cfgFile, err)
		}
		return nil
	}

	o.v.AddConfigPath(".")
	o.v.SetConfigName("faker.config")
	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("%w: failed to read config file: %w", config.ErrInvalid, err)
		}
	}
	return nil
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the CLI and prints any error. Use ExitCode to turn the result
// into a process status.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, bootstrap.ErrDeclined):
		color.Yellow("👋 %v", err)
	default:
		color.Red("❌ %v", err)
	}
	return err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, bootstrap.ErrDeclined) {
		return 0
	}
	return 2
}
