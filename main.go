package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.xrstf.de/release_calendar/pkg/calendar"
	"go.xrstf.de/release_calendar/pkg/client"
	"go.xrstf.de/release_calendar/pkg/github"
	"go.xrstf.de/release_calendar/pkg/metrics"
	"go.xrstf.de/release_calendar/pkg/wiki"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	// setup logging; stdout is reserved for the markup
	var log = logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC1123,
	})

	if err := newRootCommand(log).ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand(log *logrus.Logger) *cobra.Command {
	opt := defaultOptions()

	cmd := &cobra.Command{
		Use:   "release_calendar owner repo",
		Short: "Generate a release calendar wiki table from GitHub milestones",
		Long: `Fetches all milestones of a GitHub repository and prints the ones due in
the current year as a MediaWiki table, sorted by due date. Every milestone
gets its due date and a release date one week later.`,
		Example:       "  release_calendar mozilla-mobile focus-android",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opt.debugLog {
				log.SetLevel(logrus.DebugLevel)
			}

			repo := github.NewRepository(args[0], args[1])
			if err := repo.Validate(); err != nil {
				return err
			}

			if err := opt.validate(); err != nil {
				return err
			}

			return run(cmd.Context(), log, &opt, repo, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opt.baseURL, "base-url", opt.baseURL, "GitHub API root URL")
	flags.IntVar(&opt.year, "year", opt.year, "only include milestones due in this year (0 uses the current year)")
	flags.DurationVar(&opt.timeout, "timeout", opt.timeout, "timeout for the GitHub API request (0 disables the timeout)")
	flags.StringVar(&opt.metricsFile, "metrics-file", opt.metricsFile, "write Prometheus metrics to this file after a successful run (textfile collector format)")
	flags.BoolVar(&opt.debugLog, "debug", opt.debugLog, "enable more verbose logging")

	return cmd
}

func run(ctx context.Context, log logrus.FieldLogger, opt *options, repo *github.Repository, out io.Writer) error {
	if opt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.timeout)
		defer cancel()
	}

	year := opt.year
	if year == 0 {
		year = time.Now().Year()
	}

	repoLog := log.WithField("repo", repo.FullName())
	apiClient := client.NewClient(log.WithField("component", "client"), client.WithBaseURL(opt.baseURL))
	stats := &metrics.Stats{}

	repoLog.Debug("Fetching milestones…")

	data, err := apiClient.ListMilestones(ctx, repo.Owner, repo.Name)
	if err != nil {
		return fmt.Errorf("failed to list milestones of %s: %w", repo.FullName(), err)
	}

	if err := github.ValidateMilestones(data); err != nil {
		return err
	}

	raw, err := github.DecodeMilestones(data)
	if err != nil {
		return err
	}

	dated, err := github.NormalizeMilestones(raw)
	if err != nil {
		return err
	}

	milestones := github.FilterYear(dated, year)
	table := calendar.BuildTable(milestones, calendar.DefaultColumns)

	stats.Fetched = len(raw)
	stats.Undated = len(raw) - len(dated)
	stats.Retained = len(milestones)
	stats.Rows = len(table) - 1

	repoLog.WithFields(logrus.Fields{
		"year":     year,
		"fetched":  stats.Fetched,
		"undated":  stats.Undated,
		"retained": stats.Retained,
	}).Debug("Parsed milestones.")

	if err := wiki.Render(out, table); err != nil {
		return fmt.Errorf("failed to write markup: %w", err)
	}

	stats.FinishedAt = time.Now()

	// the markup has been printed already, so failing to write metrics
	// must not fail the run
	if opt.metricsFile != "" {
		collector := metrics.NewCollector(repo.FullName(), apiClient, stats)
		if err := metrics.WriteTextfile(opt.metricsFile, collector); err != nil {
			repoLog.Warnf("Failed to write metrics: %v", err)
		}
	}

	return nil
}
