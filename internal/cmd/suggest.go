package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nameforge/nameforge/internal/config"
	"github.com/nameforge/nameforge/internal/core"
	"github.com/nameforge/nameforge/internal/core/checker"
	"github.com/nameforge/nameforge/internal/core/scanner"
	errwrap "github.com/nameforge/nameforge/internal/errors"
	"github.com/nameforge/nameforge/internal/observability"
	"github.com/nameforge/nameforge/internal/output"
	"github.com/nameforge/nameforge/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <keywords...>",
	Short: "Suggest available domain names",
	Long: `Generate brandable .com name ideas from keywords, check each against
registration data, and print the ones still available.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().String("description", "", "Short project description to guide suggestions")
	suggestCmd.Flags().String("output", "table", "Output format: table, plain")
	suggestCmd.Flags().Int("max", 0, "Stop after this many available names (default from config)")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	keywords := strings.TrimSpace(strings.Join(args, " "))
	if keywords == "" {
		return errwrap.NewValidationError("keywords are required")
	}

	description, err := cmd.Flags().GetString("description")
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if format != "table" && format != "plain" {
		return errwrap.NewValidationError("output must be one of: table, plain")
	}

	maxResults, err := cmd.Flags().GetInt("max")
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return errwrap.WrapConfigInvalid(cmd.Context(), err, "configuration is invalid")
	}

	svc, err := suggest.NewService(cfg.Suggest)
	if err != nil {
		return errwrap.WrapConfigInvalid(cmd.Context(), err, "completion provider setup failed")
	}

	chk, err := checker.New(cfg.Lookup)
	if err != nil {
		return errwrap.WrapConfigInvalid(cmd.Context(), err, "lookup driver setup failed")
	}

	if maxResults <= 0 {
		maxResults = cfg.Scan.MaxResults
	}

	scan := &scanner.Scanner{
		Checker:       chk,
		MaxResults:    maxResults,
		Concurrency:   cfg.Scan.Concurrency,
		LookupTimeout: cfg.Scan.LookupTimeout,
	}

	observability.CLILogger.Debug("Requesting suggestions",
		zap.String("keywords", keywords),
		zap.String("model", cfg.Suggest.Model))

	raw, err := svc.Suggest(cmd.Context(), suggest.Request{
		Keywords:    keywords,
		Description: description,
	})
	if err != nil {
		return errwrap.WrapExternalService(cmd.Context(), err, "completion request failed")
	}

	candidates := core.ExtractCandidates(raw)

	observability.CLILogger.Debug("Scanning candidates",
		zap.Int("candidates", len(candidates)))

	var results []output.Result
	for name := range scan.Scan(cmd.Context(), candidates) {
		if name == scanner.NoResultsMessage {
			fmt.Println(name)
			return nil
		}
		results = append(results, output.Result{Domain: name, Available: true})
	}

	switch format {
	case "plain":
		formatter := &output.PlainFormatter{}
		fmt.Println(formatter.FormatResults(results))
	default:
		formatter := &output.TableFormatter{}
		fmt.Println(formatter.FormatResults(results))
	}

	return nil
}
