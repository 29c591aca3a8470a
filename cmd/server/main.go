package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"graphio/config"
	"graphio/network"
	"graphio/room"
)

func main() {
	config.InitConfig()
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	opts := room.DefaultOptions()
	opts.TickHz = settings.TickHz
	opts.BroadcastHz = settings.BroadcastHz
	if settings.Seed != 0 {
		opts.Seed = settings.Seed
	}
	if settings.BaseDots > 0 {
		opts.Tuning.BaseDots = settings.BaseDots
	}
	if settings.MapWidth > 0 {
		opts.Tuning.MapWidth = settings.MapWidth
	}
	if settings.MapHeight > 0 {
		opts.Tuning.MapHeight = settings.MapHeight
	}

	r := room.New(opts)
	go r.Run()

	srv := &http.Server{
		Addr: settings.Addr,
		Handler: network.NewServer(r, network.Config{
			ClickRate:     settings.ClickRate,
			ClickBurst:    settings.ClickBurst,
			AllowedOrigin: settings.AllowedOrigin,
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s (ws endpoint: /ws)", settings.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	r.Stop()
}
