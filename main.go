package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"surveybot/bot"
	"surveybot/config"
	"surveybot/utils"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "surveybot",
		Short:         "Discord bot that runs short community surveys",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCmd(), newParseCmd(), newValidateCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}
			logger, err := utils.NewLogger(level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			// 等待 SIGINT 或 SIGTERM 后关闭
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := bot.Run(ctx, cfg, logger); err != nil {
				logger.Error("bot stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
