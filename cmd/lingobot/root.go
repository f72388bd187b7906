package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lingoloop/lingobot/internal/config"
	"github.com/lingoloop/lingobot/internal/logging"
	"github.com/lingoloop/lingobot/internal/server"
)

// ServeCmd creates the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the LingoBot HTTP server.`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}
}

// runServe starts the server and blocks until interrupted
func runServe() {
	if !verbose {
		logging.Disable()
	}

	c := ServerConfig
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
		c = &loaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := server.Run(ctx, *c); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
