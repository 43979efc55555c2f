package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"sigeval/internal/adapters/artifact"
	"sigeval/internal/adapters/handler"
	"sigeval/internal/adapters/metric"
	"sigeval/internal/adapters/render"
	"sigeval/internal/core/service"
)

func main() {
	log.Info().Msg("starting sigeval...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetDefault("server.listen_addr", ":8080")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("server.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store := artifact.NewStore(viper.GetString("pipeline.artifact_dir"))

	pipeline := service.NewPipeline(
		render.NewSVGRasterizer(),
		render.NewFallback(),
		store,
		service.PipelineOptions{
			SVGWidth:  viper.GetInt("pipeline.svg_width"),
			SVGHeight: viper.GetInt("pipeline.svg_height"),
		})

	evaluator := service.NewEvaluator(pipeline, store, metric.NewSSIM(), metric.NewGradientSmoothness())

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	handler.NewEvaluate(evaluator).Register(r)

	srv := &http.Server{
		Addr:              viper.GetString("server.listen_addr"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
