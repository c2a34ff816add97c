package cmd

import (
	"fmt"
	"log"

	"tasnif/internal/apihandlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	servePort string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Tasnif as an HTTP API server",
	Long: `Starts an HTTP server exposing the classification dialogue and topic
management via a RESTful API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default() // Includes logger and recovery middleware

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			v1.POST("/classify", apiHandler.ClassifyHandler)
			v1.GET("/taxonomy", apiHandler.TaxonomyHandler)

			topicGroup := v1.Group("/topics")
			{
				topicGroup.POST("", apiHandler.CreateTopicHandler)
				topicGroup.GET("", apiHandler.ListTopicsHandler)
				topicGroup.GET("/:id", apiHandler.GetTopicHandler)
				topicGroup.POST("/:id/reclassify", apiHandler.ReclassifyTopicHandler)
			}
		}

		router.GET("/health", apiHandler.HealthHandler)

		// Flags win over server.address from config.yaml.
		listenAddr := appInstance.Config.Server.Address
		if cmd.Flags().Changed("addr") || cmd.Flags().Changed("port") || listenAddr == "" {
			listenAddr = fmt.Sprintf("%s:%s", serveAddr, servePort)
		}
		log.Printf("Starting Tasnif API server on http://%s", listenAddr)

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			log.Printf("ERROR: Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		}

		log.Println("Tasnif API server stopped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost", "Address to listen on (e.g., '0.0.0.0' for all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
}
