package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-scraper/internal/collect"
	"github.com/pdiddy/scholar-scraper/internal/httputil"
	"github.com/pdiddy/scholar-scraper/internal/input"
	"github.com/pdiddy/scholar-scraper/internal/ratelimit"
	"github.com/pdiddy/scholar-scraper/internal/secrets"
	"github.com/pdiddy/scholar-scraper/internal/store"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

const defaultTimeout = 30 * time.Second

var scrapeCmd = &cobra.Command{
	Use:   "scrape [profile-urls...]",
	Short: "Collect publication records for one or more profiles",
	Long: `Scrape fetches each Google Scholar profile URL, pages through all of its
works, and merges every work's detail page into a publication record.

Profile URLs come from the arguments, from a CSV column (--file, --column), or
from a YAML identifier file (--file batch.yaml). Invalid URLs are skipped.
A profile that fails to collect is reported and skipped unless --fail-fast is
set. The command exits non-zero if any profile failed, after writing output.`,
	RunE: runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.String("file", "", "CSV or YAML file listing profile URLs")
	f.String("column", input.DefaultColumn, "CSV column holding profile URLs")
	f.String("save-input", "", "write the resolved profile URL list to this YAML file")
	f.StringP("output", "o", "", "output file (default: stdout; required for sqlite)")
	f.String("format", string(types.OutputJSON), "output format: json, yaml, sqlite")
	f.Int("page-size", collect.DefaultPageSize, "works requested per listing page")
	f.Duration("delay", ratelimit.DefaultDelay, "base pause between requests")
	f.Duration("jitter", ratelimit.DefaultJitter, "standard deviation of the random pause added to --delay")
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")
	f.String("user-agent", "", "User-Agent header (default: a desktop browser)")
	f.Bool("browser-transport", false, "use browser-like TLS fingerprint and headers")
	f.StringSlice("excluded-domains", collect.DefaultExcludedDomains, "hosts rejected as profile URLs")
	f.Bool("fail-fast", false, "abort the batch on the first failed profile")
	f.Int("limit-works", 0, "fetch details for at most this many works per profile (0 = all)")
	f.String("base-url", collect.DefaultBaseURL, "origin that work links are resolved against")
	f.MarkHidden("base-url")

	for _, name := range []string{
		"file", "column", "output", "format", "page-size", "delay", "jitter",
		"timeout", "user-agent", "browser-transport", "excluded-domains",
		"fail-fast", "limit-works", "base-url",
	} {
		viper.BindPFlag(name, f.Lookup(name))
	}

	rootCmd.AddCommand(scrapeCmd)
}

// scrapeConfig builds the collection settings from v.
func scrapeConfig(v *viper.Viper) types.ScrapeConfig {
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:          v.GetDuration("timeout"),
			UserAgent:        v.GetString("user-agent"),
			BrowserTransport: v.GetBool("browser-transport"),
		},
		RateLimitConfig: types.RateLimitConfig{
			Delay:  v.GetDuration("delay"),
			Jitter: v.GetDuration("jitter"),
		},
		BaseURL:         v.GetString("base-url"),
		PageSize:        v.GetInt("page-size"),
		ExcludedDomains: v.GetStringSlice("excluded-domains"),
		FailFast:        v.GetBool("fail-fast"),
		LimitWorks:      v.GetInt("limit-works"),
	}
}

// outputConfig validates and returns the output settings from v.
func outputConfig(v *viper.Viper) (types.OutputConfig, error) {
	out := types.OutputConfig{
		Format: types.OutputFormat(v.GetString("format")),
		Path:   v.GetString("output"),
	}
	switch out.Format {
	case types.OutputJSON, types.OutputYAML:
	case types.OutputSQLite:
		if out.Path == "" || out.Path == "-" {
			return out, fmt.Errorf("--format sqlite needs --output")
		}
	default:
		return out, fmt.Errorf("unknown output format %q (want json, yaml or sqlite)", out.Format)
	}
	return out, nil
}

// identifiers returns args followed by the entries of the configured file.
func identifiers(v *viper.Viper, args []string) ([]string, error) {
	ids := append([]string(nil), args...)
	if path := v.GetString("file"); path != "" {
		fromFile, err := input.Load(path, v.GetString("column"))
		if err != nil {
			return nil, err
		}
		ids = append(ids, fromFile...)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("provide profile URLs as arguments or with --file")
	}
	return ids, nil
}

func runScrape(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()

	ids, err := identifiers(v, args)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("save-input"); path != "" {
		if err := input.WriteIdentifierFile(path, v.GetString("file"), ids); err != nil {
			return err
		}
		logger.Info("saved identifier list", "path", path, "count", len(ids))
	}

	out, err := outputConfig(v)
	if err != nil {
		return err
	}
	cfg := scrapeConfig(v)
	if err := secrets.Apply(loadedSecrets, &cfg.HTTPConfig); err != nil {
		return err
	}

	session, err := httputil.NewSession(cfg.HTTPConfig, logger)
	if err != nil {
		return err
	}
	collector, err := collect.New(session, cfg, collect.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting batch", "identifiers", len(ids), "format", out.Format)
	result, err := collector.CollectBatch(ctx, ids)
	if err != nil {
		return err
	}

	if err := store.Write(ctx, out, result, cmd.OutOrStdout()); err != nil {
		return err
	}
	store.WriteSummary(cmd.ErrOrStderr(), result)

	if result.HasFailures() {
		return fmt.Errorf("%d profile(s) failed collection", result.Failed())
	}
	return nil
}
