package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "marketdash/internal/config"
	"marketdash/internal/gateway"
	router "marketdash/internal/http"
	h "marketdash/internal/http/handlers"
	"marketdash/internal/poller"
	"marketdash/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	store, err := intconfig.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	env := store.Get()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	client := gateway.New(env.APIBaseURL, env.APIToken, env.FetchTimeout)

	srv := &h.Server{
		API:    client,
		Config: store.Get,
	}

	var snapshots poller.SnapshotSaver
	if env.DBDSN != "" {
		db, err := intconfig.ConnectDB(env.DBDSN)
		if err != nil {
			log.Printf("warning: snapshot store unavailable, history disabled: %v", err)
		} else {
			defer intconfig.CloseDB()
			repo := repositories.SnapshotRepository{DB: db}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Printf("warning: failed to create snapshot table: %v", err)
			}
			cancel()
			snapshots = repo
			srv.History = repo
		}
	}

	refresher := poller.NewRefresher(client, snapshots)
	refresher.Start(poller.TickerScheduler{}, env.PollInterval)
	defer refresher.Stop()
	srv.Refresher = refresher

	store.Subscribe(func(next intconfig.Env) {
		refresher.Reschedule(next.PollInterval)
		if next.APIBaseURL != env.APIBaseURL || next.APIToken != env.APIToken {
			log.Println("api_base_url/api_token changed; restart to apply")
		}
	})
	store.EnableHotReload()

	r := router.NewRouter(srv)
	h.SetRouter(r)

	httpSrv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped.")
}
