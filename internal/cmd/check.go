package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nameforge/nameforge/internal/config"
	"github.com/nameforge/nameforge/internal/core"
	"github.com/nameforge/nameforge/internal/core/checker"
	errwrap "github.com/nameforge/nameforge/internal/errors"
	"github.com/nameforge/nameforge/internal/observability"
	"github.com/nameforge/nameforge/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <domain>",
	Short: "Check a single domain's availability",
	Long:  "Check whether one .com domain can still be registered, using the configured lookup driver.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("output", "table", "Output format: table, plain")
	checkCmd.Flags().Duration("timeout", 0, "Lookup timeout (default from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	domain := strings.ToLower(strings.TrimSpace(args[0]))
	if domain == "" {
		return errwrap.NewValidationError("a domain is required")
	}
	if !strings.Contains(domain, ".") {
		domain += core.CandidateSuffix
	}
	if !core.IsCandidate(domain) {
		return errwrap.NewValidationError(fmt.Sprintf("%q is not a checkable .com domain", domain))
	}

	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if format != "table" && format != "plain" {
		return errwrap.NewValidationError("output must be one of: table, plain")
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return errwrap.WrapConfigInvalid(cmd.Context(), err, "configuration is invalid")
	}

	chk, err := checker.New(cfg.Lookup)
	if err != nil {
		return errwrap.WrapConfigInvalid(cmd.Context(), err, "lookup driver setup failed")
	}

	if timeout <= 0 {
		timeout = cfg.Scan.LookupTimeout
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	observability.CLILogger.Debug("Checking domain",
		zap.String("domain", domain),
		zap.String("driver", cfg.Lookup.Driver))

	available, err := chk.Check(ctx, domain)
	if err != nil {
		return errwrap.WrapExternalService(cmd.Context(), err, "availability lookup failed")
	}

	if format == "plain" {
		if available {
			fmt.Println(domain)
		}
		return nil
	}

	formatter := &output.TableFormatter{}
	fmt.Println(formatter.FormatResults([]output.Result{{Domain: domain, Available: available}}))

	return nil
}
