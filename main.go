package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rpupo63/video-portfolio-backend/api"
	"github.com/rpupo63/video-portfolio-backend/config"
	"github.com/rpupo63/video-portfolio-backend/database"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/services"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Video portfolio API",
		Long: `Portfolio serves the projects, skills, tools, experiences and certificates
of a video editing portfolio, and carries the maintenance commands for its database.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newBackfillCmd(),
		newSeedCmd(),
		newSchemaReportCmd(),
		newTokenCmd(),
	)
	return cmd
}

// loadConfig reads .env, the environment and, when SSM_PARAMETER_PATH is
// set, AWS SSM Parameter Store, then configures the global logger.
func loadConfig(ctx context.Context) (map[string]string, error) {
	c := config.New(".env")

	if path := config.GetString(c, "SSM_PARAMETER_PATH", ""); path != "" {
		if err := config.LoadSSM(ctx, c, path); err != nil {
			return nil, err
		}
	}

	setupLogging(c)
	return c, nil
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "APP_ENV", "") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func openDatabase(ctx context.Context) (map[string]string, *gorm.DB, error) {
	c, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return c, db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	log.Info().Msg("Initializing app...")

	c, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	// Start and listenToInterrupt each send once; the spare slot lets the
	// losing sender finish after shutdown.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(c, database.New(db))
	if err != nil {
		return err
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(config.GetSeconds(c, "SHUTDOWN_TIMEOUT_SECONDS", 30))
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info().Msg("migration complete")
			return nil
		},
	}
}

func newBackfillCmd() *cobra.Command {
	var concurrency int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Rewrite legacy project rows into the current shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, db, err := openDatabase(ctx)
			if err != nil {
				return err
			}

			backfill := services.NewBackfill(
				database.New(db).ProjectRepo(),
				services.WithConcurrency(concurrency),
				services.WithDryRun(dryRun),
			)
			result, err := backfill.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Legacy projects found: %d\n", result.Found)
			fmt.Fprintf(out, "Migrated: %d\n", result.Migrated)
			fmt.Fprintf(out, "Failed: %d\n", result.Failed)
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "  - %s\n", msg)
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d projects could not be migrated", result.Failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "Rows written at once")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert and validate without writing")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}

			projects := services.NewProjectService(database.New(db).ProjectRepo(), 0, 0)
			created, err := services.Seed(cmd.Context(), projects, services.SeedProjects(), reset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, p := range created {
				fmt.Fprintf(out, "%d. %s (%s, %s)\n", i+1, p.Title, p.Category, p.Year)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete existing projects first")
	return cmd
}

func newSchemaReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema-report",
		Short: "Compare the models with the live database columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			return models.WriteSchemaReport(db.WithContext(cmd.Context()), cmd.OutOrStdout())
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject, email string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an admin bearer token with JWT_SECRET_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			token, err := api.IssueToken(config.GetString(c, "JWT_SECRET_KEY", ""), subject, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "Token subject")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
