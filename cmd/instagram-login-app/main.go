// Package main provides the instagram-login-app server entry point.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/MohdFaisalBidda/instagram-login-app/config"
	"github.com/MohdFaisalBidda/instagram-login-app/handlers"
	"github.com/MohdFaisalBidda/instagram-login-app/pkg/graph"
	"github.com/MohdFaisalBidda/instagram-login-app/pkg/statestore"
	"github.com/MohdFaisalBidda/instagram-login-app/services"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "instagram-login-app",
		Short:   "Instagram login and comment gateway",
		Long:    "Serves the OAuth login flow and the profile/media/comment API backing the Instagram dashboard frontend.",
		Version: version,
	}
	rootCmd.SetVersionTemplate("instagram-login-app version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(debug)
			return serve()
		},
	}
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}),
	))
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	graphClient := graph.NewClient()
	states := statestore.New(cfg.Redis.Addr(), cfg.Redis.Username, cfg.Redis.Password)

	authService := services.NewAuthService(cfg.Facebook.AppID, cfg.Facebook.AppSecret, cfg.Facebook.RedirectURI, graphClient)
	profileService := services.NewProfileService(graphClient)
	commentService := services.NewCommentService(graphClient)

	handler := handlers.New(authService, profileService, commentService, states, cfg.Server.FrontendURL)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.Routes(handlers.NewRateLimiter()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	slog.Info("server starting", "port", cfg.Server.Port, "frontend", cfg.Server.FrontendURL)
	return server.ListenAndServe()
}
