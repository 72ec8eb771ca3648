package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// IngestCommandHandler encapsulates logic for entity ingestion via CLI.
type IngestCommandHandler struct {
	logger logger.Logger
}

// NewIngestCommandHandler initializes and returns an IngestCommandHandler
// instance with a configured logger.
func NewIngestCommandHandler() (*IngestCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &IngestCommandHandler{logger: loggerInstance}, nil
}

// IngestCmd reads an entity document from a JSON file and ingests it
func (commandHandler *IngestCommandHandler) IngestCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}

	payload, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	var entity entities.Entity
	if err := json.Unmarshal(payload, &entity); err != nil {
		commandHandler.logger.Error("invalid entity document: ", err)
		return
	}

	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	created, err := apiClient.CreateEntity(cmd.Context(), &entity)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Ingested entity ", created.ID)
	if err := printJSON(created); err != nil {
		commandHandler.logger.Error(err)
	}
}

// DeleteCmd removes an entity by its CURIE identifier
func (commandHandler *IngestCommandHandler) DeleteCmd(cmd *cobra.Command, args []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	if err := apiClient.DeleteEntity(cmd.Context(), args[0]); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Deleted entity ", args[0])
}

// InitIngestCommands registers entity ingestion commands
func InitIngestCommands(rootCmd *cobra.Command) error {
	handler, err := NewIngestCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create ingest command handler %w", err)
	}

	var ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Ingest an entity from a JSON file",
		Run:   handler.IngestCmd,
	}
	ingestCmd.Flags().StringP("input-file", "", "", "Path to a JSON file holding the entity document")
	_ = ingestCmd.MarkFlagRequired("input-file")
	rootCmd.AddCommand(ingestCmd)

	var deleteCmd = &cobra.Command{
		Use:   "delete <entity-id>",
		Short: "Delete an entity by its CURIE identifier",
		Args:  cobra.ExactArgs(1),
		Run:   handler.DeleteCmd,
	}
	rootCmd.AddCommand(deleteCmd)

	return nil
}
