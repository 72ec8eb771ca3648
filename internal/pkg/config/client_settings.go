package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is the production BERtron API endpoint.
const DefaultBaseURL = "https://bertron-api.bertron.production.svc.spin.nersc.org/bertron"

// ClientSettings holds configuration settings for the BERtron API client
type ClientSettings struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,min=1,max=600"`
	// Insecure disables TLS certificate verification. NOTE: till we get SSL certs in place
	Insecure bool `mapstructure:"insecure"`
}

// Validate checks that all fields in ClientSettings are valid
func (s *ClientSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ClientSettings: %w", err)
	}

	return nil
}
