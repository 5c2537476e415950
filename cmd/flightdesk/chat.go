package main

import (
	"context"
	"fmt"
	"os"

	"flightdesk"
	"flightdesk/internal/config"
	"flightdesk/internal/logging"
	"flightdesk/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the booking assistant in the terminal",
	Long:  `Starts an interactive conversation with the FlightDesk bot on stdin/stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		levelName, _ := cmd.Flags().GetString("log-level")
		plain, _ := cmd.Flags().GetBool("plain")

		cfg := config.Default()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
			cfg = loaded
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

		runner := flightdesk.Runner{
			Input:  os.Stdin,
			Output: os.Stdout,
		}
		if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner()
			fmt.Printf("flightdesk %s\n\n", flightdesk.Version)
			runner.Renderer = tui.NewRenderer()
			runner.Format = tui.AttachmentMarkdown
		}

		if err := runner.Run(context.Background(), b, uuid.NewString()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")

	// Make 'chat' the default if no command is provided.
	rootCmd.Run = chatCmd.Run
}
