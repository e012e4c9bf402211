// Package main is the one-shot monitoring pass, intended to run on a cron
// schedule. It checks the monitoring window, runs a full evaluation pass, and
// delivers the summary to Slack when any rule matched.
//
// Exit codes: 0 on a clean pass (including "outside window" and "no
// matches"), 1 on configuration or evaluation failure, 2 when the pass
// succeeded but delivery failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fieldwatch/internal/config"
	"fieldwatch/internal/external"
	"fieldwatch/internal/nws"
	"fieldwatch/internal/observability"
	"fieldwatch/internal/outlook"
	"fieldwatch/internal/policy"
	"fieldwatch/internal/schedule"
	"fieldwatch/internal/types"
)

// practiceTimeFormat renders the next practice time in the summary header.
const practiceTimeFormat = "Monday Jan 2 15:04"

func main() {
	force := flag.Bool("force", false, "run the pass even outside the monitoring window")
	dryRun := flag.Bool("dry-run", false, "print the summary instead of posting to Slack")
	flag.Parse()

	os.Exit(run(*force, *dryRun))
}

func run(force, dryRun bool) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	clock := types.RealClock{}
	now := clock.Now()

	if !force && !schedule.InMonitoringWindow(now) {
		logger.Info("outside monitoring window, skipping pass", "now", now)
		return 0
	}

	rules, err := policy.Load(cfg.Policy.Path)
	if err != nil {
		logger.Error("policy load failed", "error", err)
		return 1
	}

	httpClient := &http.Client{Timeout: cfg.NWS.Timeout}
	nwsClient := nws.NewClient(httpClient, nws.ClientConfig{
		UserAgent: cfg.NWS.UserAgent,
		BaseURL:   cfg.NWS.BaseURL,
		Logger:    logger,
	})
	fetcher := nws.NewFetcher(nwsClient, nws.Location{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
		StationID: cfg.Location.StationID,
	}, logger)

	service := outlook.NewService(outlook.ServiceConfig{
		Source:        fetcher,
		Rules:         rules.Rules,
		FuturePeriods: cfg.Policy.FuturePeriods,
		Clock:         clock,
		Metrics:       observability.NewMetrics(),
		Logger:        logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := service.GetOutlook(ctx)
	if err != nil {
		logger.Error("evaluation pass failed", "error", err)
		return 1
	}

	a := result.Assessment
	if len(a.NowMatches) == 0 && len(a.FutureMatches) == 0 {
		logger.Info("no rule matches, nothing to deliver",
			"driving_risk", a.DrivingRisk,
			"venue_risk", a.VenueRisk,
		)
		return 0
	}

	text := outlook.Summary(a, result.NextPractice.Format(practiceTimeFormat))
	if dryRun {
		fmt.Println(text)
		return 0
	}

	// The monitor exists to deliver; missing credentials fail it outright.
	slack, err := external.NewSlackClient(httpClient, external.SlackClientConfig{
		BotToken: cfg.Slack.BotToken,
		Channel:  cfg.Slack.Channel,
		BaseURL:  cfg.Slack.BaseURL,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("slack client unavailable", "error", err)
		return 1
	}

	ts, err := slack.PostMessage(ctx, text)
	if err != nil {
		logger.Error("summary delivery failed", "error", err)
		return 2
	}

	logger.Info("summary delivered",
		"ts", ts,
		"now_matches", len(a.NowMatches),
		"future_matches", len(a.FutureMatches),
	)
	return 0
}
