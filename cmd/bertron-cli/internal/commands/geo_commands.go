package commands

import (
	"fmt"

	"github.com/ber-data/bertron-client/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// GeoCommandHandler encapsulates logic for geospatial queries via CLI.
type GeoCommandHandler struct {
	logger logger.Logger
}

// NewGeoCommandHandler initializes and returns a GeoCommandHandler instance
// with a configured logger.
func NewGeoCommandHandler() (*GeoCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &GeoCommandHandler{logger: loggerInstance}, nil
}

// NearbyCmd finds entities within a radius of a geographic point
func (commandHandler *GeoCommandHandler) NearbyCmd(cmd *cobra.Command, _ []string) {
	latitude, err := cmd.Flags().GetFloat64("lat")
	if err != nil {
		commandHandler.logger.Error("invalid lat flag ", err)
		return
	}
	longitude, err := cmd.Flags().GetFloat64("lng")
	if err != nil {
		commandHandler.logger.Error("invalid lng flag ", err)
		return
	}
	radiusMeters, err := cmd.Flags().GetFloat64("radius")
	if err != nil {
		commandHandler.logger.Error("invalid radius flag ", err)
		return
	}
	radiusKm, err := cmd.Flags().GetFloat64("radius-km")
	if err != nil {
		commandHandler.logger.Error("invalid radius-km flag ", err)
		return
	}

	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	if radiusKm > 0 {
		radiusMeters = radiusKm * 1000
	}

	response, err := apiClient.FindNearbyEntities(cmd.Context(), latitude, longitude, radiusMeters)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// BboxCmd finds entities within a rectangular bounding box
func (commandHandler *GeoCommandHandler) BboxCmd(cmd *cobra.Command, _ []string) {
	southwestLat, err := cmd.Flags().GetFloat64("sw-lat")
	if err != nil {
		commandHandler.logger.Error("invalid sw-lat flag ", err)
		return
	}
	southwestLng, err := cmd.Flags().GetFloat64("sw-lng")
	if err != nil {
		commandHandler.logger.Error("invalid sw-lng flag ", err)
		return
	}
	northeastLat, err := cmd.Flags().GetFloat64("ne-lat")
	if err != nil {
		commandHandler.logger.Error("invalid ne-lat flag ", err)
		return
	}
	northeastLng, err := cmd.Flags().GetFloat64("ne-lng")
	if err != nil {
		commandHandler.logger.Error("invalid ne-lng flag ", err)
		return
	}

	apiClient, err := newClientFromCmd(cmd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer apiClient.Close()

	response, err := apiClient.FindEntitiesInBoundingBox(cmd.Context(), southwestLat, southwestLng, northeastLat, northeastLng)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printQueryResponse(response); err != nil {
		commandHandler.logger.Error(err)
	}
}

// InitGeoCommands registers geospatial query commands
func InitGeoCommands(rootCmd *cobra.Command) error {
	handler, err := NewGeoCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create geo command handler %w", err)
	}

	var nearbyCmd = &cobra.Command{
		Use:   "nearby",
		Short: "Find entities within a radius of a geographic point",
		Run:   handler.NearbyCmd,
	}
	nearbyCmd.Flags().Float64P("lat", "", 0, "Latitude of the center point in decimal degrees")
	nearbyCmd.Flags().Float64P("lng", "", 0, "Longitude of the center point in decimal degrees")
	nearbyCmd.Flags().Float64P("radius", "", 10000, "Search radius in meters")
	nearbyCmd.Flags().Float64P("radius-km", "", 0, "Search radius in kilometers (overrides --radius)")
	_ = nearbyCmd.MarkFlagRequired("lat")
	_ = nearbyCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(nearbyCmd)

	var bboxCmd = &cobra.Command{
		Use:   "bbox",
		Short: "Find entities within a rectangular bounding box",
		Run:   handler.BboxCmd,
	}
	bboxCmd.Flags().Float64P("sw-lat", "", 0, "Southwest corner latitude in decimal degrees")
	bboxCmd.Flags().Float64P("sw-lng", "", 0, "Southwest corner longitude in decimal degrees")
	bboxCmd.Flags().Float64P("ne-lat", "", 0, "Northeast corner latitude in decimal degrees")
	bboxCmd.Flags().Float64P("ne-lng", "", 0, "Northeast corner longitude in decimal degrees")
	_ = bboxCmd.MarkFlagRequired("sw-lat")
	_ = bboxCmd.MarkFlagRequired("sw-lng")
	_ = bboxCmd.MarkFlagRequired("ne-lat")
	_ = bboxCmd.MarkFlagRequired("ne-lng")
	rootCmd.AddCommand(bboxCmd)

	return nil
}
