package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobguard/jobguard/internal/app"
	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/internal/infrastructure/postgres"
	"github.com/jobguard/jobguard/pkg/tlsutil"
)

func (c *cli) newAssessCmd() *cobra.Command {
	var req dto.AssessPostingRequest
	cmd := &cobra.Command{
		Use:     "assess",
		Short:   "Assess a posting from its title, description and company",
		Example: `jobguard assess --title "Data Entry" --company "Quick Cash Inc" --description "Pay a fee to start"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.AssessPosting.Execute(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "job title")
	cmd.Flags().StringVar(&req.Description, "description", "", "job description")
	cmd.Flags().StringVar(&req.Company, "company", "", "company name")
	cmd.Flags().StringVar(&req.URL, "url", "", "posting URL")
	return cmd
}

func (c *cli) newAssessURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess-url URL",
		Short: "Scrape a posting page and assess it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.AssessURL.Execute(ctx, dto.AssessURLRequest{URL: args[0]})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func (c *cli) newBlacklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage the scam blacklist",
	}

	var report dto.ReportScamRequest
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Report a scam URL or company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Operators run with local access and may set severity.
			report.Privileged = true
			if report.Reporter == "" {
				report.Reporter = "cli"
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.ReportScam.Execute(ctx, report)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	reportCmd.Flags().StringVar(&report.URL, "url", "", "scam URL")
	reportCmd.Flags().StringVar(&report.Company, "company", "", "scam company")
	reportCmd.Flags().StringVar(&report.Details, "details", "", "what happened")
	reportCmd.Flags().StringVar(&report.Reporter, "reporter", "", "reporter name")
	reportCmd.Flags().StringVar(&report.Severity, "severity", "", "low, medium, high or critical")

	var check dto.CheckBlacklistRequest
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check a URL or company against the blacklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.CheckBlacklist.Execute(ctx, check)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	checkCmd.Flags().StringVar(&check.URL, "url", "", "URL to check")
	checkCmd.Flags().StringVar(&check.Company, "company", "", "company to check")

	var limit int
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show blacklist totals and recent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.BlacklistOverview.Execute(ctx, dto.BlacklistOverviewRequest{Limit: limit})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	statsCmd.Flags().IntVar(&limit, "limit", 10, "recent entries to show")

	cmd.AddCommand(reportCmd, checkCmd, statsCmd)
	return cmd
}

func (c *cli) newVerifyCompanyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-company NAME",
		Short: "Run the company verifier on its own",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.VerifyCompany.Execute(ctx, dto.VerifyCompanyRequest{Company: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func (c *cli) newCheckDomainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-domain URL",
		Short: "Run the URL security analyzer on its own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.CheckDomain.Execute(ctx, dto.CheckDomainRequest{URL: args[0]})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func (c *cli) newMigrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.config()
			if cfg.Storage.Driver != config.StoragePostgres {
				return fmt.Errorf("migrate needs the postgres driver, got %q", cfg.Storage.Driver)
			}
			if down {
				if err := postgres.MigrateDown(cfg.Storage.DatabaseURL); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			}
			if err := postgres.Migrate(cfg.Storage.DatabaseURL, cfg.Storage.MigrationsDir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll every migration back")
	return cmd
}

func (c *cli) newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete assessment history older than HISTORY_RETENTION",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.UseCases.PruneHistory.Execute(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
}

func (c *cli) newTokenCmd() *cobra.Command {
	var (
		subject string
		roles   []string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with the JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.config()
			if cfg.Auth.JWTSecret == "" {
				return errors.New("token needs --jwt-secret or JWT_SECRET")
			}
			cfg.Auth.JWTPublicKeyFile = ""
			svc, err := app.NewJWTService(cfg.Auth)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(subject, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{"analyst"}, "comma separated roles")
	return cmd
}

func (c *cli) newDevCertCmd() *cobra.Command {
	var (
		hosts  []string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "dev-cert",
		Short: "Write a self-signed CA and gRPC server certificate for local TLS",
		Long: "dev-cert writes ca.pem, ca-key.pem, server.pem and server-key.pem. Point " +
			"GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE at the server pair.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tlsutil.GenerateSelfSignedCert(hosts, outDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "certificates written to %s\n", outDir)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names and IPs for the server certificate")
	cmd.Flags().StringVar(&outDir, "out", "certs", "output directory")
	return cmd
}
