// Package main is the entry point for the bertron-cli application.
// It initializes the root command and registers sub-commands for querying,
// geospatial search and ingestion against a BERtron API server, then
// executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/ber-data/bertron-client/cmd/bertron-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "bertron-cli",
		Short: "BERtron cross-BER data integration CLI tool",
		Long: `bertron-cli is a command-line tool for querying the BERtron API.
Supports listing and retrieving entities, MongoDB-style find queries,
name search, geospatial radius and bounding box searches, and entity
ingestion.

Connection flags apply to every command:
- --base-url    BERtron API base URL
- --timeout     request timeout in seconds
- --insecure    skip TLS certificate verification
- --config      optional yaml config file overriding the flags above`,
	}

	rootCmd.PersistentFlags().String("base-url", "", "BERtron API base URL (defaults to the production deployment)")
	rootCmd.PersistentFlags().Int("timeout", 30, "Request timeout in seconds")
	rootCmd.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().String("config", "", "Path to a yaml client config file")

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register entity query commands
	if err := commands.InitEntityCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize entity commands: %w", err)
	}

	// Register geospatial commands
	if err := commands.InitGeoCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize geo commands: %w", err)
	}

	// Register ingest commands
	if err := commands.InitIngestCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize ingest commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
