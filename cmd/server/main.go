package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "vendordesk/internal/adapters/web"
	"vendordesk/internal/ai"
	"vendordesk/internal/app"
	"vendordesk/internal/core"
	"vendordesk/internal/db"
	"vendordesk/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Setup(logger.FromEnv()); err != nil {
		panic("logger: " + err.Error())
	}
	log := logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	clientService := core.NewClientService(pool)
	orderService := core.NewOrderService(pool)
	amcService := core.NewAMCService(pool)
	reportingService := core.NewReportingService(pool)

	var narrator app.NarrativeGenerator
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		narrator = ai.NewNarrator(apiKey)
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set; report narratives disabled")
	}

	svc := app.NewAppService(clientService, orderService, amcService, reportingService, narrator, logger.WithComponent("app"))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, logger.WithComponent("web"))

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
