package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"copydesk/agent"
	"copydesk/api/router"
	"copydesk/config"
	"copydesk/conversation"
	"copydesk/db"
	"copydesk/imagegen"
	"copydesk/logger"
	"copydesk/repositories"
	"copydesk/search"
	"copydesk/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	userRepo := repositories.NewUserRepository(db.Database())
	sessionRepo := repositories.NewSessionRepository(db.Database())
	messageRepo := repositories.NewMessageRepository(db.Database())
	uploadRepo := repositories.NewUploadRepository(db.Database())
	aiLogRepo := repositories.NewAILogRepository(db.Database())

	searchClient := search.New(cfg.TavilyApiKey)
	enhancer, err := imagegen.NewGeminiEnhancer(ctx, cfg.GeminiApiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("failed to initialize prompt enhancer:", err)
	}
	posterGen := imagegen.New(cfg.StabilityApiKey, enhancer, cfg.ImageOutputDir)

	copywriter, err := agent.New(ctx, cfg.GeminiApiKey, cfg.GeminiModel, searchClient, posterGen)
	if err != nil {
		log.Fatal("failed to initialize agent:", err)
	}

	ttl := time.Duration(cfg.Chat.SessionTTLHours) * time.Hour
	sessionSvc := services.NewSessionService(userRepo, sessionRepo, messageRepo, ttl)
	uploadSvc := services.NewUploadService(uploadRepo)
	cache := conversation.NewStore(ttl)
	chatSvc := services.NewChatService(copywriter, sessionSvc, uploadSvc, messageRepo, aiLogRepo, cache, cfg.Chat.HistoryWindow, cfg.GeminiModel)

	r := router.New(router.Deps{
		Chat:     chatSvc,
		Sessions: sessionSvc,
		Uploads:  uploadSvc,
	})

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf(":%d", port)
	logger.Log.Infof("listening on %s", addr)

	handler := cors.AllowAll().Handler(r)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
