package cli

import (
	"github.com/spf13/cobra"

	"github.com/lingoloop/lingobot/internal/config"
)

// Shared CLI flags
var (
	cfgFile string
	verbose bool
)

// ServerConfig holds the loaded server configuration (set by main)
var ServerConfig *config.Config

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config) *cobra.Command {
	ServerConfig = c

	rootCmd := &cobra.Command{
		Use:   "lingobot",
		Short: "LingoBot - English tutor chat service",
		Long: `LingoBot is a chat service that corrects English sentences, answers
grammar questions and runs quizzes, backed by a generative model.

Just type 'lingobot' to start the server.`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: etc/lingobot.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}

// VersionCmd prints the configured app version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s %s\n", ServerConfig.App.Name, ServerConfig.App.Version)
		},
	}
}
