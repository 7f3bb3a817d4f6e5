package main

import (
	"log"
	"whatsapp-campaign/internal/api"
	"whatsapp-campaign/internal/campaign"
	"whatsapp-campaign/internal/config"
	"whatsapp-campaign/internal/database"
	"whatsapp-campaign/internal/middleware"
	"whatsapp-campaign/internal/templates"
	"whatsapp-campaign/internal/whatsapp"
	"whatsapp-campaign/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	database.InitGorm(cfg)

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	whatsappClient := whatsapp.NewClient(cfg)
	templateStore := templates.NewFileStore(cfg.TemplatesPath)
	messageLog := database.NewMessageLog(database.GormDB)
	campaignService := campaign.NewService(whatsappClient, templateStore, messageLog, hub)

	proxyHandler := api.NewProxyHandler(whatsappClient)
	templateHandler := api.NewTemplateHandler(templateStore)
	providerHandler := api.NewProviderHandler(whatsappClient)
	campaignHandler := api.NewCampaignHandler(campaignService)
	messageHandler := api.NewMessageHandler(messageLog)

	r.GET("/health", api.Health)
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/ws", gin.WrapF(hub.ServeWs))

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/create", proxyHandler.Create)

		// Template Routes
		apiGroup.GET("/templates", templateHandler.GetTemplates)
		apiGroup.GET("/templates/filters", templateHandler.GetFilters)
		apiGroup.GET("/templates/:id", templateHandler.GetTemplate)
		apiGroup.POST("/templates/:id/preview", templateHandler.Preview)
		apiGroup.POST("/templates/:id/request", templateHandler.BuildRequest)

		apiGroup.GET("/provider/templates", providerHandler.GetTemplates)

		// Campaign Routes
		apiGroup.POST("/campaigns", campaignHandler.Send)
		apiGroup.POST("/events/member", campaignHandler.MemberEvent)
		apiGroup.GET("/messages", messageHandler.GetMessages)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
