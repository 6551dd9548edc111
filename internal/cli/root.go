// Package cli implements the jobguard operator command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jobguard/jobguard/internal/app"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/pkg/observability"
)

// Version is stamped at build time.
var Version = "dev"

// Options customises the command tree, mostly for tests.
type Options struct {
	Overrides app.Overrides
	// Base replaces config.Load as the starting configuration.
	Base *config.Config
}

type cli struct {
	v    *viper.Viper
	opts Options
}

// NewRootCmd builds the jobguard command tree.
func NewRootCmd(opts Options) *cobra.Command {
	c := &cli{v: viper.New(), opts: opts}

	root := &cobra.Command{
		Use:           "jobguard",
		Short:         "Score job postings for fraud risk",
		Long:          "jobguard runs the fraud risk engine locally: assess postings, manage the scam blacklist and run maintenance.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("storage", "", "storage driver: postgres, sqlite or memory")
	flags.String("database-url", "", "postgres connection URL")
	flags.String("sqlite-path", "", "sqlite database file")
	flags.String("log-level", "warn", "log level")
	flags.String("jwt-secret", "", "HMAC secret for token")
	for _, name := range []string{"storage", "database-url", "sqlite-path", "log-level", "jwt-secret"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	// JOBGUARD_STORAGE, JOBGUARD_DATABASE_URL, ...
	c.v.SetEnvPrefix("JOBGUARD")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(
		c.newAssessCmd(),
		c.newAssessURLCmd(),
		c.newBlacklistCmd(),
		c.newVerifyCompanyCmd(),
		c.newCheckDomainCmd(),
		c.newMigrateCmd(),
		c.newPruneCmd(),
		c.newTokenCmd(),
		c.newDevCertCmd(),
	)
	return root
}

// Execute runs the CLI against os.Args.
func Execute() {
	if err := NewRootCmd(Options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// config overlays flag and JOBGUARD_* values on the environment config.
func (c *cli) config() config.Config {
	var cfg config.Config
	if c.opts.Base != nil {
		cfg = *c.opts.Base
	} else {
		cfg = config.Load()
	}
	if s := c.v.GetString("storage"); s != "" {
		cfg.Storage.Driver = strings.ToLower(s)
	}
	if s := c.v.GetString("database-url"); s != "" {
		cfg.Storage.DatabaseURL = s
	}
	if s := c.v.GetString("sqlite-path"); s != "" {
		cfg.Storage.SQLitePath = s
	}
	if s := c.v.GetString("jwt-secret"); s != "" {
		cfg.Auth.JWTSecret = s
	}
	cfg.LogLevel = c.v.GetString("log-level")
	return cfg
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	return observability.InitLogger(observability.LogConfig{
		Level:   c.v.GetString("log-level"),
		Format:  "text",
		Service: "jobguard-cli",
		Output:  cmd.ErrOrStderr(),
	})
}

// withApp builds the application for one command and closes it afterwards.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, c.config(), nil, c.logger(cmd), c.opts.Overrides)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
