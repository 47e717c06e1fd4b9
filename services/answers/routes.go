// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package answers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all Answers routes with the router.
//
// Description:
//
//	Registers all /v1/answers/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	POST /v1/answers/query - Answer a free-text query
//	GET  /v1/answers/health - Health check
//	GET  /v1/answers/ready - Readiness check
//
// Example:
//
//	cfg, _ := answers.DefaultServiceConfig()
//	service, _ := answers.NewService(cfg)
//	handlers := answers.NewHandlers(service)
//
//	v1 := router.Group("/v1")
//	answers.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	answers := rg.Group("/answers")
	{
		answers.POST("/query", handlers.HandleQuery)

		answers.GET("/health", handlers.HandleHealth)
		answers.GET("/ready", handlers.HandleReady)
	}
}
