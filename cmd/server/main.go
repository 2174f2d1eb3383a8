package main

import (
	"context"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"fenrir/internal/engine"
	fenrirnet "fenrir/internal/net"
)

// loadConfig wires spf13/viper defaults + environment overrides, replacing
// the teacher's hardcoded "0.0.0.0", 9001 in cmd/main.go. Keys map to
// environment variables with dots as underscores (FENRIR_SERVER_PORT).
// engine.queue_depth is registered as a default only; engine.New always
// uses engine.DefaultQueueDepth.
func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 9001)
	v.SetDefault("metrics.port", 9002)
	v.SetDefault("engine.queue_depth", engine.DefaultQueueDepth)
	v.SetEnvPrefix("FENRIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg := loadConfig()

	eng := engine.New()
	srv := fenrirnet.New(cfg.GetString("server.address"), cfg.GetInt("server.port"), eng.Commands())

	go func() {
		if err := eng.Run(ctx); err != nil {
			log.Error().Err(err).Msg("engine stopped")
		}
	}()

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := ":" + strconv.Itoa(cfg.GetInt("metrics.port"))
		log.Info().Str("address", addr).Msg("metrics server running")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	<-ctx.Done()
}
