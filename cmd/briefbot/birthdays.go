package main

import (
	"fmt"
	"time"

	"github.com/sandevgo/briefbot/internal/config"
	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/internal/llm"
	"github.com/sandevgo/briefbot/internal/runner"
	"github.com/sandevgo/briefbot/internal/storage/crm"
	"github.com/sandevgo/briefbot/pkg/log"
	"github.com/spf13/cobra"
)

// Birthday messages are 1-3 sentences.
const birthdayMaxTokens = 256

var testDate string

var birthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "Send a birthday card for each CRM contact with a birthday today",
	Long: `Queries the CRM for contacts whose birthday falls today (score above the
configured threshold), generates a short personal message per contact, and
sends one card per contact to the configured Telegram topic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		initEnv(ctx)
		appCfg := config.NewAppConfig(ctx)
		loc := appCfg.Location(ctx)
		now := time.Now().In(loc)

		monthDay := testDate
		if monthDay == "" {
			monthDay = now.Format("01-02")
		} else if len(monthDay) != 5 || monthDay[2] != '-' {
			return fmt.Errorf("invalid --date %q, expected MM-DD", monthDay)
		}

		logger.Info().
			Str("at", now.Format("2006-01-02 15:04 MST")).
			Str("month_day", monthDay).
			Bool("test_date", testDate != "").
			Msg("birthday run starting")

		cfg, err := config.LoadBirthdayConfig(appCfg.GetBirthdayConfigPath())
		if err != nil {
			return err
		}

		creds := config.NewCredentialProvider()
		apiKey, err := creds.AnthropicKey()
		if err != nil {
			return err
		}

		db, err := crm.NewDB(ctx, appCfg.CRMDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		messenger, err := newMessenger(appCfg)
		if err != nil {
			return err
		}

		r := runner.NewBirthday(
			crm.NewContacts(db),
			llm.NewAnthropic(apiKey, cfg.Model, birthdayMaxTokens),
			messenger,
			newPacer(appCfg.ContactPacing),
			core.Destination{ChatID: cfg.Destination.ChatID, ThreadID: cfg.Destination.ThreadID},
			cfg.MinScore,
			loc,
		)

		res, err := r.Run(ctx, monthDay)
		if err != nil {
			return err
		}
		logger.Info().Int("sent", res.Delivered).Int("total", res.Attempted).Msg("done")
		return nil
	},
}

func init() {
	birthdaysCmd.Flags().StringVar(&testDate, "date", "", "override today's month-day (MM-DD) for test runs")
	rootCmd.AddCommand(birthdaysCmd)
}
