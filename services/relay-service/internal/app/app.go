package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stoik/leadrelay/internal/logging"
	"github.com/stoik/leadrelay/services/relay-service/internal/api"
	"github.com/stoik/leadrelay/services/relay-service/internal/capture"
	"github.com/stoik/leadrelay/services/relay-service/internal/db"
	"github.com/stoik/leadrelay/services/relay-service/internal/relay"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Lead capture relay service",
	Long:  "Validates website form submissions and relays them to automation webhooks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(viper.GetString("log.format"), logging.ParseLevel(viper.GetString("log.level")))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Serves the newsletter, contact and email capture endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// The capture endpoint is only served when a database is configured
		var captures capture.Store
		if viper.GetString("database.url") != "" {
			pool, err := db.Connect(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer pool.Close()
			captures = capture.NewPostgresStore(pool)
		} else {
			slog.Info("database.url not set, email capture endpoint disabled")
		}

		gin.SetMode(viper.GetString("server.mode"))
		server := api.NewServer(newRelayClient(), captures, apiConfig(), slog.Default())

		httpServer := &http.Server{
			Addr:              viper.GetString("server.addr"),
			Handler:           server.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Handle graceful shutdown
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			slog.Info("starting relay service", "addr", httpServer.Addr)
			errChan <- httpServer.ListenAndServe()
		}()

		select {
		case <-sigChan:
			slog.Info("shutting down gracefully")
			shutdownCtx, stop := context.WithTimeout(ctx, viper.GetDuration("server.shutdown_timeout"))
			defer stop()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Warn("some requests may not have completed", "error", err)
			}
			return nil
		case err := <-errChan:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

// apiConfig reads the server-side API settings
func apiConfig() api.Config {
	return api.Config{
		Source:         viper.GetString("relay.source"),
		ContactURL:     viper.GetString("relay.contact_url"),
		AllowedHeaders: viper.GetString("cors.allowed_headers"),
	}
}

// newRelayClient builds the relay client. When an allow-list is configured the
// contact webhook host is added to it, since that destination is server-controlled.
func newRelayClient() *relay.Client {
	hosts := viper.GetStringSlice("relay.allowed_hosts")
	if contact := viper.GetString("relay.contact_url"); len(hosts) > 0 && contact != "" {
		if u, err := url.Parse(contact); err == nil && u.Host != "" {
			return relay.NewClientFromConfig(relay.WithAllowedHosts(append(hosts, u.Host)))
		}
	}
	return relay.NewClientFromConfig()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Flags
	flags := rootCmd.PersistentFlags()
	flags.String("server.addr", ":8080", "HTTP listen address")
	flags.String("server.mode", gin.ReleaseMode, "gin mode: 'debug', 'release' or 'test'")
	flags.Duration("server.shutdown_timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
	flags.Duration("relay.timeout", 30*time.Second, "Outbound webhook timeout (0 disables it)")
	flags.StringSlice("relay.allowed_hosts", nil, "Webhook hosts submissions may be relayed to (empty allows any)")
	flags.String("relay.source", "", "Source stamped on newsletter submissions")
	flags.String("relay.contact_url", "", "Webhook receiving contact form submissions")
	flags.String("cors.allowed_headers", api.DefaultAllowedHeaders, "Access-Control-Allow-Headers value")
	flags.String("database.url", "", "Database connection URL (enables email capture)")
	flags.String("log.level", "info", "Log level: debug, info, warn, error")
	flags.String("log.format", "text", "Log format: 'text' or 'json'")

	// Bind flags to viper
	for _, key := range []string{
		"server.addr", "server.mode", "server.shutdown_timeout",
		"relay.timeout", "relay.allowed_hosts", "relay.source", "relay.contact_url",
		"cors.allowed_headers", "database.url", "log.level", "log.format",
	} {
		viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./services/relay-service")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
