package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moodroute/moodroute/internal/profile"
	"github.com/moodroute/moodroute/server"
	"github.com/moodroute/moodroute/store"
	"github.com/moodroute/moodroute/store/db"
)

const greetingBanner = `MoodRoute AI, mood-based city walks.`

var rootCmd = &cobra.Command{
	Use:   "moodroute",
	Short: "A mood-based city-walk recommendation service",
	RunE: func(_ *cobra.Command, _ []string) error {
		serverProfile := &profile.Profile{
			Mode:        viper.GetString("mode"),
			Addr:        viper.GetString("addr"),
			Port:        viper.GetInt("port"),
			Data:        viper.GetString("data"),
			Driver:      viper.GetString("driver"),
			DSN:         viper.GetString("dsn"),
			InstanceURL: viper.GetString("instance-url"),
			Version:     version,
		}
		serverProfile.FromEnv()
		if err := serverProfile.Validate(); err != nil {
			return err
		}

		setupLogger(serverProfile)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(serverProfile)
		if err != nil {
			cancel()
			slog.Error("failed to create db driver", "error", err)
			return err
		}

		storeInstance := store.New(dbDriver, serverProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			cancel()
			slog.Error("failed to migrate database", "error", err)
			return err
		}

		s, err := server.NewServer(ctx, serverProfile, storeInstance)
		if err != nil {
			cancel()
			slog.Error("failed to create server", "error", err)
			return err
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig.String())
			s.Shutdown(ctx)
			cancel()
		}()

		printGreeting(serverProfile)
		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			cancel()
			return err
		}

		<-ctx.Done()
		return nil
	},
}

var version = "0.1.0"

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 3000)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 3000, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")
	rootCmd.PersistentFlags().String("instance-url", "", "the public url of the instance")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("moodroute")
	viper.AutomaticEnv()
}

func setupLogger(serverProfile *profile.Profile) {
	level := slog.LevelInfo
	if serverProfile.IsDev() {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func printGreeting(serverProfile *profile.Profile) {
	fmt.Println(greetingBanner)
	fmt.Printf("version %s, mode %s, driver %s\n", serverProfile.Version, serverProfile.Mode, serverProfile.Driver)
	fmt.Printf("listening on %s:%d\n", serverProfile.Addr, serverProfile.Port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
