// Package commands implements the bertron-cli sub-commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ber-data/bertron-client/internal/client"
	"github.com/ber-data/bertron-client/internal/pkg/config"
	"github.com/ber-data/bertron-client/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// clientSettingsFromCmd resolves client settings from a yaml config file when
// --config is set, otherwise from the connection flags.
func clientSettingsFromCmd(cmd *cobra.Command) (*config.ClientSettings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if configPath != "" {
		clientConfig, err := config.InitializeClientConfig(configPath)
		if err != nil {
			return nil, err
		}
		return &clientConfig.Client, nil
	}

	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, fmt.Errorf("invalid base-url flag: %w", err)
	}
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	timeoutSeconds, err := cmd.Flags().GetInt("timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid timeout flag: %w", err)
	}

	insecure, err := cmd.Flags().GetBool("insecure")
	if err != nil {
		return nil, fmt.Errorf("invalid insecure flag: %w", err)
	}

	return &config.ClientSettings{
		BaseURL:        baseURL,
		TimeoutSeconds: timeoutSeconds,
		Insecure:       insecure,
	}, nil
}

// newClientFromCmd builds a BERtron API client from the command's
// connection flags.
func newClientFromCmd(cmd *cobra.Command, log logger.Logger) (*client.BertronClient, error) {
	settings, err := clientSettingsFromCmd(cmd)
	if err != nil {
		return nil, err
	}
	return client.NewBertronClient(settings, log)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printQueryResponse writes a query response to stdout in the API's
// documents envelope shape.
func printQueryResponse(response *client.QueryResponse) error {
	payload := map[string]interface{}{
		"documents": response.Entities,
		"count":     response.Count,
	}
	if response.QueryType != "" {
		payload["query_type"] = response.QueryType
	}
	if len(response.Metadata) > 0 {
		payload["metadata"] = response.Metadata
	}
	return printJSON(payload)
}
