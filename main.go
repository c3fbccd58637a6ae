package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vit0-9/lookup_api/handlers"
	"github.com/vit0-9/lookup_api/pkg/config"
	"github.com/vit0-9/lookup_api/pkg/logging"
	"github.com/vit0-9/lookup_api/pkg/lookup"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("WARN: Error loading .env file, using environment variables from system if set.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// cli carries what every subcommand needs once flags and environment are parsed.
type cli struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "lookup",
		Short:         "WHOIS and certificate-transparency lookups for domain names",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = logging.New(cfg.Log, c.errOut)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	var force bool
	whoisCmd := &cobra.Command{
		Use:   "whois <domain>",
		Short: "Print WHOIS records for the base domain of a name, or the name itself with --force",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := c.service().Whois(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			return c.print(handlers.NewWhoisLookupResponse(outcome, time.Now()))
		},
	}
	whoisCmd.Flags().BoolVarP(&force, "force", "f", false, "Look up the exact name instead of its base domain")

	certsCmd := &cobra.Command{
		Use:   "certs <domain>",
		Short: "Print certificates issued for a name from certificate-transparency logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := c.service().Certs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(handlers.NewCertsLookupResponse(outcome, time.Now()))
		},
	}

	baseCmd := &cobra.Command{
		Use:   "base <domain>",
		Short: "Print the registrable base domain and public suffix of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			breakdown, err := c.service().Breakdown(args[0])
			if err != nil {
				return err
			}
			return c.print(breakdown)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd, whoisCmd, certsCmd, baseCmd)
	return rootCmd
}

func (c *cli) serve(ctx context.Context) error {
	app, err := NewApp(c.cfg, c.logger)
	if err != nil {
		return err
	}
	return app.Start(ctx)
}

func (c *cli) service() *lookup.Service {
	return newLookupService(c.cfg, c.logger, nil)
}

func (c *cli) print(v any) error {
	encoder := json.NewEncoder(c.out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
