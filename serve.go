package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/K9173A/todoapp/config"
	"github.com/K9173A/todoapp/handlers"
	"github.com/K9173A/todoapp/repository"
	"github.com/K9173A/todoapp/templates"
	"github.com/K9173A/todoapp/utils"
)

const csrfTTL = time.Hour

func serveCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the to-do web server.

Settings come from defaults, then the optional config file, then the
environment (a .env file in the working directory is loaded first).

Examples:
  todoapp serve
  todoapp serve --config todoapp.toml --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML or YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides PORT")

	return cmd
}

func runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Addr()
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	timeout, err := cfg.DBTimeout()
	if err != nil {
		return err
	}
	store := repository.NewTaskStore(
		client.Database(cfg.Mongo.Database).Collection(repository.CollectionName),
		repository.WithTimeout(timeout),
	)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	secret := cfg.Security.SecretKey
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		log.Warn().Msg("SECRET_KEY is not set, form tokens will not survive a restart")
	}

	views := templates.New()
	tasks := handlers.NewTaskHandler(store, views, utils.NewCSRF(secret, csrfTTL), handlers.Options{
		ItemsPerPage: cfg.Pages.ItemsPerPage,
		PageRange:    cfg.Pages.Range,
	})
	server := handlers.NewServer(tasks, views, func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	return server.Serve(ctx, addr)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
