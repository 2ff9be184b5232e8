package main

import (
	"insta-scheduler/internal/app"
	"insta-scheduler/pkg/config"

	_ "insta-scheduler/docs" // Swagger docs
)

// @title           Insta Scheduler API
// @version         1.0
// @description     Schedules Instagram posts and publishes them through the Graph API when they come due.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}
	if cfg.FBAppID == "" || cfg.FBAppSecret == "" {
		panic("FB_APP_ID and FB_APP_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
