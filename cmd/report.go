package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"media-insight-dashboard/internal/kafka"
	"media-insight-dashboard/internal/report"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/store"
	"media-insight-dashboard/internal/util"
)

var (
	reportStart      string
	reportEnd        string
	reportPlatforms  string
	reportNoInsights bool
	reportRefresh    bool
	reportNoColor    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard once in the terminal",
	Long: `Runs the dashboard pipeline once with the given filters and prints every section
with its table and insight. Without filters the whole dataset is used.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().StringVarP(&reportPlatforms, "platforms", "p", "", "comma-separated platforms (default all)")
	reportCmd.Flags().BoolVar(&reportNoInsights, "no-insights", false, "skip the completion service")
	reportCmd.Flags().BoolVar(&reportRefresh, "refresh", false, "ignore cached insights")
	reportCmd.Flags().BoolVar(&reportNoColor, "no-color", false, "disable ANSI colors")
}

func reportCriteria(cmd *cobra.Command) (service.CriteriaInput, error) {
	var in service.CriteriaInput
	if reportStart != "" {
		t, err := util.ParseDate(reportStart)
		if err != nil {
			return in, fmt.Errorf("invalid --start: %w", err)
		}
		in.StartDate = &t
	}
	if reportEnd != "" {
		t, err := util.ParseDate(reportEnd)
		if err != nil {
			return in, fmt.Errorf("invalid --end: %w", err)
		}
		in.EndDate = &t
	}
	if cmd.Flags().Changed("platforms") {
		in.Platforms = []string{}
		for _, p := range strings.Split(reportPlatforms, ",") {
			if p = strings.TrimSpace(p); p != "" {
				in.Platforms = append(in.Platforms, p)
			}
		}
	}
	return in, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	criteria, err := reportCriteria(cmd)
	if err != nil {
		return err
	}

	repo, closeRepo, err := newDatasetRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	datasets := service.NewDatasetService(repo)
	if err := datasets.Reload(ctx); err != nil {
		return err
	}

	var llm service.LLMService
	if !reportNoInsights {
		if llm, err = newLLMService(cfg); err != nil {
			return err
		}
	}

	publisher := kafka.NewInsightEventPublisher(cfg)
	defer publisher.Close()

	sessions := store.NewInMemorySessionStore()
	insights := service.NewInsightService(cfg, llm, newInsightCache(cfg), publisher)
	maintenance := service.NewCacheMaintenanceService(insights, sessions, newFileStateManager(cfg))
	if err := maintenance.Restore(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	dashboard := service.NewDashboardService(cfg, datasets, insights, sessions)
	dash, err := dashboard.Build(ctx, service.DashboardRequest{
		Criteria:     criteria,
		WithInsights: !reportNoInsights,
		Refresh:      reportRefresh,
	})
	if err != nil {
		return err
	}

	color := !reportNoColor && os.Getenv("NO_COLOR") == ""
	if err := report.NewPrinter(cmd.OutOrStdout(), cfg.Insight.Brand, color).Print(dash); err != nil {
		return err
	}
	return maintenance.Snapshot()
}
