package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"brari/internal/ai"
	appsvc "brari/internal/app"
	"brari/internal/bootstrap"
	"brari/internal/store"
	"brari/internal/transport/http/handler"
	"brari/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	llmClient := ai.NewOpenAICompatibleClient()
	docStore := store.NewRedisDocumentStore(app.Redis)

	inferencer := appsvc.NewLLMTitleInferencer(llmClient, ai.ChatConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.TitleModel,
	})
	ingestService := appsvc.NewIngestService(inferencer, docStore)
	chatService := appsvc.NewChatService(
		llmClient,
		ai.ChatConfig{
			BaseURL: app.Config.LLM.BaseURL,
			APIKey:  app.Config.LLM.APIKey,
			Model:   app.Config.LLM.Model,
		},
		app.Config.LLM.CostModel,
		time.Duration(app.Config.Chat.StreamDelayMS)*time.Millisecond,
		app.Config.Chat.MaxContextChars,
	)

	healthHandler := handler.NewHealthHandler(app)
	enrichHandler := handler.NewEnrichHandler(
		ingestService,
		time.Duration(app.Config.Chat.EnrichTimeoutSeconds)*time.Second,
	)
	chatHandler := handler.NewChatHandler(
		chatService,
		time.Duration(app.Config.Chat.ChatTimeoutSeconds)*time.Second,
	)
	documentHandler := handler.NewDocumentHandler(ingestService)

	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.POST("/chat", chatHandler.Chat)
	api.GET("/documents", documentHandler.List)

	enrichGroup := api.Group("/enrich")
	enrichGroup.Use(middleware.AuthBearer(app.Config.Auth.EnrichToken))
	enrichGroup.POST("", enrichHandler.Enrich)
	enrichGroup.POST("/pdf", enrichHandler.EnrichPDF)

	return router
}
