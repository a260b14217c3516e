package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/database"
	"github.com/evandrarf/numeracy-tutor-be/internal/config"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "numeracy-tutor",
	Short: "Adaptive numeracy tutoring API",
	Long: `numeracy-tutor serves the tutoring API: adaptive practice questions,
AI explanations and hints, progress tracking and teacher analytics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db := setup()
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("Migrations completed successfully")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the question bank and demo accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, log, db := setup()
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return seed(v, log, db)
	},
}

func init() {
	rootCmd.Flags().Int("port", 0, "port to listen on (overrides api.port)")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*viper.Viper, *logrus.Logger, *gorm.DB) {
	viperConfig := config.NewViper()
	log := config.NewLogger(viperConfig)
	db := database.New(viperConfig)
	return viperConfig, log, db
}

func seed(v *viper.Viper, log *logrus.Logger, db *gorm.DB) error {
	n, err := database.SeedQuestionBank(db)
	if err != nil {
		return err
	}
	log.WithField("questions", n).Info("Question bank seeded")

	if v.GetBool("database.seed_demo") {
		if err := database.SeedDemoAccounts(db); err != nil {
			return err
		}
	}
	log.Info("Seeders completed successfully")
	return nil
}

func serve(cmd *cobra.Command) error {
	viperConfig, log, db := setup()
	validator := validate.NewValidator()
	api := config.NewAPI(viperConfig, log)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("Migrations completed successfully")

	if err := seed(viperConfig, log, db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	if err := config.Bootstrap(ctx, &config.BootstrapConfig{
		Config:    viperConfig,
		Log:       log,
		Api:       api,
		Validator: validator,
		DB:        db,
	}); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	port := viperConfig.GetInt("api.port")
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}
	listenAddr := fmt.Sprintf(":%d", port)

	go func() {
		if err := api.Listen(listenAddr); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("API shutdown error: %v", err)
	}

	return nil
}
