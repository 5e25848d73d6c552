package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stoik/leadrelay/internal/logging"
	"github.com/stoik/leadrelay/services/mock-webhook/internal/mock"
)

var rootCmd = &cobra.Command{
	Use:   "mock-webhook",
	Short: "Mock automation webhook target",
	Long:  "Records relayed submissions in memory and answers like an n8n webhook trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(viper.GetString("log.format"), logging.ParseLevel(viper.GetString("log.level")))

		r := newRouter(mock.NewRecorder())
		addr := fmt.Sprintf(":%s", viper.GetString("port"))
		slog.Info("starting mock webhook server", "addr", addr)
		return http.ListenAndServe(addr, r)
	},
}

func init() {
	rootCmd.Flags().String("port", "8081", "Listen port")
	rootCmd.Flags().String("log.level", "info", "Log level")
	rootCmd.Flags().String("log.format", "text", "Log format: 'text' or 'json'")
	viper.BindPFlags(rootCmd.Flags())
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRouter(rec *mock.Recorder) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/webhook/:name", func(c *gin.Context) { handleWebhook(rec, c) })

	// Admin endpoints for testing
	admin := r.Group("/admin")
	{
		admin.GET("/received", func(c *gin.Context) {
			c.JSON(http.StatusOK, rec.Deliveries(c.Query("hook")))
		})
		admin.DELETE("/received", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"cleared": rec.Reset()})
		})
		admin.POST("/failure", func(c *gin.Context) { handleSetFailure(rec, c) })
	}

	return r
}

func handleWebhook(rec *mock.Recorder, c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be JSON"})
		return
	}

	delivery, failure := rec.Record(c.Param("name"), body)
	slog.Info("webhook delivery", "hook", delivery.Hook, "id", delivery.ID.String(), "payload", string(body))

	status := failure.StatusFor()
	switch {
	case status < 200 || status > 299:
		c.JSON(status, gin.H{"code": status, "message": "Error in workflow"})
	case failure.Plain:
		c.String(status, "Workflow was started")
	default:
		c.JSON(status, gin.H{"ok": true, "id": delivery.ID})
	}
}

func handleSetFailure(rec *mock.Recorder, c *gin.Context) {
	var f mock.Failure
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if f.Status != 0 && (f.Status < 200 || f.Status > 599) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be between 200 and 599"})
		return
	}

	rec.SetFailure(f)
	c.JSON(http.StatusOK, gin.H{
		"status":  f.StatusFor(),
		"plain":   f.Plain,
		"message": fmt.Sprintf("Webhook now answers with status %d", f.StatusFor()),
	})
}
