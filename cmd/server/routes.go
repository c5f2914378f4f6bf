package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api"
	widgetapi "github.com/Nixie-Tech-LLC/athan-widget/internal/http/api/widget/endpoints"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/refresh"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, svc *refresh.Service) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		widgetapi.HealthModule(),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		widgetapi.WidgetModule(svc),
	)
}
