package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sandevgo/briefbot/internal/config"
	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/internal/llm"
	"github.com/sandevgo/briefbot/internal/runner"
	"github.com/sandevgo/briefbot/internal/search"
	"github.com/sandevgo/briefbot/pkg/log"
	"github.com/spf13/cobra"
)

var briefCmd = &cobra.Command{
	Use:   "brief <module> <mode>",
	Short: "Generate and deliver a search-driven brief",
	Long: `Runs the configured web searches for a module, generates the brief from
the mode's prompt, and delivers it to the module's Telegram destination.

mode: daily | weekly | flash`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		module := args[0]
		mode := strings.ToLower(args[1])
		if !config.ValidMode(mode) {
			return fmt.Errorf("unknown mode %q, use: daily | weekly | flash", args[1])
		}

		initEnv(ctx)
		appCfg := config.NewAppConfig(ctx)
		loc := appCfg.Location(ctx)

		logger.Info().
			Str("module", module).Str("mode", mode).
			Str("at", time.Now().In(loc).Format("2006-01-02 15:04 MST")).
			Msg("brief run starting")

		cfg, err := config.LoadBriefConfig(appCfg.GetModuleConfigPath(module))
		if err != nil {
			return err
		}

		promptRef, err := cfg.PromptRef(mode)
		if err != nil {
			return err
		}
		prompt, err := os.ReadFile(appCfg.GetPromptPath(promptRef))
		if err != nil {
			return fmt.Errorf("read prompt: %w", err)
		}
		queries := cfg.Queries(mode)

		creds := config.NewCredentialProvider()
		braveKey, err := creds.BraveKey()
		if err != nil {
			return err
		}
		apiKey, err := creds.AnthropicKey()
		if err != nil {
			return err
		}
		messenger, err := newMessenger(appCfg)
		if err != nil {
			return err
		}

		aggregator := search.NewAggregator(
			search.NewBrave(braveKey),
			newPacer(appCfg.SearchPacing),
			appCfg.SearchContextTokens,
		)

		r := runner.NewBrief(
			aggregator,
			llm.NewAnthropic(apiKey, cfg.Model, cfg.MaxTokens),
			messenger,
			core.Destination{ChatID: cfg.Destination.ChatID, ThreadID: cfg.Destination.ThreadID},
			loc,
		)

		res, err := r.Run(ctx, string(prompt), queries)
		if err != nil {
			return err
		}
		if res.Delivered < res.Attempted {
			return fmt.Errorf("delivery incomplete: %d/%d chunks sent", res.Delivered, res.Attempted)
		}
		logger.Info().Int("sent", res.Delivered).Int("total", res.Attempted).Msg("done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(briefCmd)
}
