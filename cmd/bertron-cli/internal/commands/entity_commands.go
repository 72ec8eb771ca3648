package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// EntityCommandHandler encapsulates logic for entity query operations via CLI.
type EntityCommandHandler struct {
	logger logger.Logger
}

// NewEntityCommandHandler initializes and returns an EntityCommandHandler
// instance with a configured logger.
func NewEntityCommandHandler() (*EntityCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &EntityCommandHandler{logger: loggerInstance}, nil
}

// HealthCmd checks the health of the BERtron API server
func (commandHandler *EntityCommandHandler) HealthCmd(cmd *cobra.Command, _ []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	status, err := apiClient.Health(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(status); err != nil {
		commandHandler.logger.Error(err)
	}
}

// ListCmd lists all entities in the BERtron database
func (commandHandler *EntityCommandHandler) ListCmd(cmd *cobra.Command, _ []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	response, err := apiClient.GetAllEntities(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// GetCmd retrieves a single entity by its CURIE identifier
func (commandHandler *EntityCommandHandler) GetCmd(cmd *cobra.Command, args []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	entity, err := apiClient.GetEntityByID(cmd.Context(), args[0])
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(entity); err != nil {
		commandHandler.logger.Error(err)
	}
}

// FindCmd searches entities with a MongoDB-style query document
func (commandHandler *EntityCommandHandler) FindCmd(cmd *cobra.Command, _ []string) {
	query := entities.NewFindQuery()

	filterJSON, err := cmd.Flags().GetString("filter")
	if err != nil {
		commandHandler.logger.Error("invalid filter flag ", err)
		return
	}
	if filterJSON != "" {
		if err := json.Unmarshal([]byte(filterJSON), &query.Filter); err != nil {
			commandHandler.logger.Error("invalid filter document: ", err)
			return
		}
	}

	projectionJSON, err := cmd.Flags().GetString("projection")
	if err != nil {
		commandHandler.logger.Error("invalid projection flag ", err)
		return
	}
	if projectionJSON != "" {
		if err := json.Unmarshal([]byte(projectionJSON), &query.Projection); err != nil {
			commandHandler.logger.Error("invalid projection document: ", err)
			return
		}
	}

	sortJSON, err := cmd.Flags().GetString("sort")
	if err != nil {
		commandHandler.logger.Error("invalid sort flag ", err)
		return
	}
	if sortJSON != "" {
		if err := json.Unmarshal([]byte(sortJSON), &query.Sort); err != nil {
			commandHandler.logger.Error("invalid sort document: ", err)
			return
		}
	}

	if query.Skip, err = cmd.Flags().GetInt("skip"); err != nil {
		commandHandler.logger.Error("invalid skip flag ", err)
		return
	}
	if query.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		commandHandler.logger.Error("invalid limit flag ", err)
		return
	}

	if err := query.Validate(); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	response, err := apiClient.FindEntities(cmd.Context(), query)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// SearchCmd searches entities by name pattern
func (commandHandler *EntityCommandHandler) SearchCmd(cmd *cobra.Command, args []string) {
	caseSensitive, err := cmd.Flags().GetBool("case-sensitive")
	if err != nil {
		commandHandler.logger.Error("invalid case-sensitive flag ", err)
		return
	}

	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	response, err := apiClient.SearchEntitiesByName(cmd.Context(), args[0], caseSensitive)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// SourceCmd lists entities from a specific BER data source
func (commandHandler *EntityCommandHandler) SourceCmd(cmd *cobra.Command, args []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	response, err := apiClient.FindEntitiesBySource(cmd.Context(), args[0])
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// TypeCmd lists entities of a specific entity type
func (commandHandler *EntityCommandHandler) TypeCmd(cmd *cobra.Command, args []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	response, err := apiClient.FindEntitiesByEntityType(cmd.Context(), args[0])
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// SummaryCmd aggregates entity counts per data source and entity type
func (commandHandler *EntityCommandHandler) SummaryCmd(cmd *cobra.Command, _ []string) {
	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	summary, err := apiClient.Summarize(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	payload := map[string]interface{}{
		"total":          summary.Total,
		"by_source":      summary.BySource,
		"by_entity_type": summary.ByEntityType,
	}
	if err := printJSON(payload); err != nil {
		commandHandler.logger.Error(err)
	}
}

// InitEntityCommands registers entity query commands
func InitEntityCommands(rootCmd *cobra.Command) error {
	handler, err := NewEntityCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create entity command handler %w", err)
	}

	var healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check the health of the BERtron API server",
		Run:   handler.HealthCmd,
	}
	rootCmd.AddCommand(healthCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List all entities",
		Run:   handler.ListCmd,
	}
	rootCmd.AddCommand(listCmd)

	var getCmd = &cobra.Command{
		Use:   "get <entity-id>",
		Short: "Get an entity by its CURIE identifier",
		Args:  cobra.ExactArgs(1),
		Run:   handler.GetCmd,
	}
	rootCmd.AddCommand(getCmd)

	var findCmd = &cobra.Command{
		Use:   "find",
		Short: "Search entities with a MongoDB-style query",
		Run:   handler.FindCmd,
	}
	findCmd.Flags().StringP("filter", "", "", `Filter document as JSON (e.g. '{"ber_data_source": "EMSL"}')`)
	findCmd.Flags().StringP("projection", "", "", `Projection document as JSON (e.g. '{"name": 1}')`)
	findCmd.Flags().StringP("sort", "", "", `Sort document as JSON (e.g. '{"name": -1}')`)
	findCmd.Flags().IntP("skip", "", 0, "Number of matching entities to skip")
	findCmd.Flags().IntP("limit", "", 100, "Maximum number of entities to return")
	rootCmd.AddCommand(findCmd)

	var searchCmd = &cobra.Command{
		Use:   "search <name-pattern>",
		Short: "Search entities by name pattern",
		Args:  cobra.ExactArgs(1),
		Run:   handler.SearchCmd,
	}
	searchCmd.Flags().BoolP("case-sensitive", "", false, "Match the name pattern case-sensitively")
	rootCmd.AddCommand(searchCmd)

	var sourceCmd = &cobra.Command{
		Use:   "source <ber-data-source>",
		Short: "List entities from a BER data source (EMSL, ESS-DIVE, JGI, NMDC, MONET)",
		Args:  cobra.ExactArgs(1),
		Run:   handler.SourceCmd,
	}
	rootCmd.AddCommand(sourceCmd)

	var typeCmd = &cobra.Command{
		Use:   "type <entity-type>",
		Short: "List entities of an entity type (biodata, sample, sequence, taxon, jgi_biosample)",
		Args:  cobra.ExactArgs(1),
		Run:   handler.TypeCmd,
	}
	rootCmd.AddCommand(typeCmd)

	var summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Summarize entity counts per data source and entity type",
		Run:   handler.SummaryCmd,
	}
	rootCmd.AddCommand(summaryCmd)

	return nil
}
