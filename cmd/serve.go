package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"docsort/internal/apihandlers"
)

var serveAddr string

// serveCmd exposes the classifier over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run docsort as an HTTP API server",
	Long: `Starts an HTTP server exposing document classification and run
history. Uploaded files are classified in place and not moved into the
category tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Serve.Address
		}

		router := gin.Default()
		handler := apihandlers.NewAPIHandler(appInstance)

		api := router.Group("/api")
		{
			api.POST("/classify", handler.ClassifyHandler)
			api.GET("/runs", handler.ListRunsHandler)
		}

		fmt.Printf("Listening on %s\n", addr)
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config: serve.address)")
	rootCmd.AddCommand(serveCmd)
}
