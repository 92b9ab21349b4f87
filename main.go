package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/swaggo/swag"

	"hr_interview_analysis/config"
	_ "hr_interview_analysis/docs" // swagger docs
	"hr_interview_analysis/handlers"
	"hr_interview_analysis/logger"
	"hr_interview_analysis/services"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("logging initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// Without an API key the process still starts, but the LLM-backed
	// endpoints answer 500 until it is configured.
	var llm services.LLMClient
	if client, err := services.NewOpenAIClient(cfg); err != nil {
		logger.Error("OpenAI client initialization failed, LLM endpoints disabled", "error", err)
	} else {
		logger.Info("OpenAI client initialized", "model", cfg.OpenAI.Model, "base_url", cfg.OpenAI.BaseURL)
		llm = client
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	handlers.RegisterRoutes(r, cfg, llm)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", serverAddr)
	logger.Info("swagger docs available", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, r))
}
