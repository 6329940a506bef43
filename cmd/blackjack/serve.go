package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calvinwijaya/blackjack/internal/api"
	"github.com/calvinwijaya/blackjack/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over HTTP with live WebSocket updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("frontend") {
			cfg.Server.FrontendURL, _ = cmd.Flags().GetString("frontend")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Initialize the store
		gameStore := store.NewMemoryStore()
		log.Println("In-memory game store initialized")

		database := openDatabase(cfg)
		if database != nil {
			defer database.Close()
		}

		// Initialize WebSocket hub
		hub := api.NewHub()
		go hub.Run(ctx)
		log.Println("WebSocket hub started")

		handlers := api.NewHandlers(gameStore, database, hub, deckOptions(cfg)...)

		r := mux.NewRouter()
		handlers.RegisterRoutes(r)

		// Add middleware for logging
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				next.ServeHTTP(w, r)
				log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
			})
		})

		c := cors.New(cors.Options{
			AllowedOrigins:   []string{cfg.Server.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		})

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      c.Handler(r),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errc <- err
			}
			close(errc)
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("frontend", "http://localhost:5173", "frontend URL allowed by CORS")
}
