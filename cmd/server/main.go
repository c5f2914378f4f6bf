package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/clock"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/mqtt"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/refresh"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/render"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/state"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for the named platform and exit")
	tokenTTL := flag.Duration("token-ttl", 365*24*time.Hour, "lifetime of tokens printed by -issue-token")
	flag.Parse()

	env, err := LoadEnvironment()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment")
	}
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	if *issueToken != "" {
		token, err := middleware.GenerateJWT(*issueToken, env.SecretKey, *tokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to sign token")
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closer, err := InitStateSource(ctx, env)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize widget data source")
	}
	defer closer.Close()

	publisher, err := mqtt.Connect(env.MQTTBrokerURL, env.MQTTClientID, env.MQTTTopicPrefix)
	if err != nil {
		log.Fatal().Err(err).Str("broker", env.MQTTBrokerURL).Msg("failed to connect to MQTT broker")
	}
	defer publisher.Close()

	svc := refresh.NewService(
		state.NewReader(src),
		clock.System(),
		render.Renderer{SupportsNativeCountdown: env.NativeCountdown, ElapsedText: env.ElapsedText},
		publisher,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, env, svc)

	srv := &http.Server{Addr: env.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("addr", env.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
