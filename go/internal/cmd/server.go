package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/livescores/go/internal/api"
	"github.com/mcdev12/livescores/go/internal/gateway"
)

func setupServer(cfg AppConfig, services *Services) *http.Server {
	handler := api.NewHandler(services.Tracker, services.Fetcher)
	browse := api.NewScheduleHandler(services.Schedule)
	if cfg.RateLimit > 0 {
		// one budget for every mutating route
		limit := api.RateLimit(cfg.RateLimit, time.Minute)
		handler.SetRateLimit(limit)
		browse.SetRateLimit(limit)
	}
	ws := gateway.NewWebSocketHandler(services.Gateway)
	return api.NewServer(fmt.Sprintf(":%s", cfg.Port), handler, services.Metrics, browse, ws)
}
