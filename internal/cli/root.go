package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var envFile string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Operator tooling for the quiz question pool and database",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
			if os.Getenv("APP_ENV") == "production" || envFile == "" {
				return
			}
			if err := godotenv.Load(envFile); err != nil {
				log.Debug().Err(err).Str("file", envFile).Msg("env file not loaded")
			}
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "configs/.env", "dotenv file loaded outside production")
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewPrefetchCmd())
	cmd.AddCommand(NewPurgeCmd())
	return cmd
}
