package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alchemy/internal/apihandlers"
	"alchemy/internal/app"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis API server",
	Long: `Starts an HTTP server exposing analysis, translation, news search and
history via a RESTful API under /api/v1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			appInstance.Config.Server.Addr = serveAddr
		}
		if cmd.Flags().Changed("port") {
			appInstance.Config.Server.Port = servePort
		}
		return runServer(cmd.Context(), appInstance)
	},
}

func newRouter(appInstance *app.App) *gin.Engine {
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	apihandlers.NewAPIHandler(appInstance.AnalysisService, appInstance.JobClient).Register(router)
	return router
}

// requestLogger logs each request through logrus instead of gin's default writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("API request")
	}
}

func runServer(ctx context.Context, appInstance *app.App) error {
	listenAddr := appInstance.Config.ListenAddr()
	srv := &http.Server{
		Addr:    listenAddr,
		Handler: newRouter(appInstance),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting API server on http://%s", listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, stopping API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown API server: %w", err)
	}
	log.Info("API server stopped.")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides server.port)")
}
