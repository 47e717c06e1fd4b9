// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command answers starts the portal Answers API server.
//
// The Answers engine turns free-text portal queries into a single typed
// instant answer: it canonicalizes terms against the domain vocabularies,
// classifies the intent, searches the domain collaborators, and renders
// the winning candidate through the matching answer template.
//
// Usage:
//
//	go run ./cmd/answers
//	go run ./cmd/answers -port 9090
//
// Example requests:
//
//	# Health check
//	curl http://localhost:8080/v1/answers/health
//
//	# Ask a question
//	curl -X POST http://localhost:8080/v1/answers/query \
//	  -H "Content-Type: application/json" \
//	  -d '{"query": "request access to jira"}'
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/AleutianAI/portal/services/answers"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	if *debug {
		gin.SetMode(gin.DebugMode)
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// W3C TraceContext propagation so portal-web spans continue into the
	// answers pipeline.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cfg, err := answers.DefaultServiceConfig()
	if err != nil {
		slog.Error("Failed to build service config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	svc, err := answers.NewService(cfg)
	if err != nil {
		slog.Error("Failed to create answers service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers := answers.NewHandlers(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("portal-answers"))
	if *debug {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	answers.RegisterRoutes(v1, handlers)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	printBanner(*port)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("Shutting down portal Answers server")
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", *port)
	slog.Info("Starting portal Answers server", slog.String("address", addr))
	if err := router.Run(addr); err != nil {
		slog.Error("Failed to start server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func printBanner(port int) {
	banner := `
╔═══════════════════════════════════════════════════════════════════╗
║                      PORTAL ANSWERS SERVER                        ║
╠═══════════════════════════════════════════════════════════════════╣
║                                                                   ║
║  Query understanding and instant-answer synthesis for the portal. ║
║                                                                   ║
║  Quick Start:                                                     ║
║  ┌─────────────────────────────────────────────────────────────┐  ║
║  │ # Health check                                              │  ║
║  │ curl http://localhost:%d/v1/answers/health            │  ║
║  │                                                             │  ║
║  │ # Ask a question                                            │  ║
║  │ curl -X POST http://localhost:%d/v1/answers/query \   │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"query": "request access to jira"}'                  │  ║
║  └─────────────────────────────────────────────────────────────┘  ║
║                                                                   ║
║  Endpoints:                                                       ║
║  ├── POST /v1/answers/query - Answer a free-text query            ║
║  ├── GET  /v1/answers/health, /v1/answers/ready                   ║
║  └── GET  /metrics - Prometheus metrics                           ║
║                                                                   ║
║  Press Ctrl+C to stop                                             ║
╚═══════════════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, port, port)
}
