package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdesk"
	httpAdapter "flightdesk/internal/adapters/http"
	"flightdesk/internal/config"
	"flightdesk/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the FlightDesk bot in server mode, exposing a JSON conversation API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		levelName, _ := cmd.Flags().GetString("log-level")

		cfg := config.Default()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		logger := logging.New(logging.ParseLevel(levelName))

		store, locker, cleanup, err := cfg.Store.BuildStore()
		if err != nil {
			fmt.Printf("Error building state store: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := cleanup(); err != nil {
				logger.Warn("store cleanup failed", "error", err)
			}
		}()

		opts := []flightdesk.Option{
			flightdesk.WithStore(store),
			flightdesk.WithLogger(logger),
		}
		if locker != nil {
			opts = append(opts, flightdesk.WithLocker(locker))
		}
		b, err := flightdesk.New(opts...)
		if err != nil {
			fmt.Printf("Error initializing flightdesk: %v\n", err)
			os.Exit(1)
		}

		// The server locks through the bot's session manager, so it gets
		// the raw router rather than the locking facade.
		server := httpAdapter.NewServer(b.Router(), b.Sessions(), httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: server.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting FlightDesk Server on %s\n", srv.Addr)
			fmt.Printf("State backend: %s\n", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("FlightDesk Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
