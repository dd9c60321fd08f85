package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"order-functions-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	NotificationService NotificationService
	ExportService       ExportService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	// CSVLocale selects the order date format in exports
	CSVLocale string
	// DefaultCustomerName replaces a missing purchaser name in exports
	DefaultCustomerName string
	Logger              *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos *repositories.RepositoryContainer, config *ServiceConfig) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository container cannot be nil")
	}

	if config == nil {
		config = &ServiceConfig{}
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	dates, err := NewLocaleDateFormatter(config.CSVLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to create date formatter: %w", err)
	}
	config.Logger.WithField("csv_locale", dates.Locale()).Debug("Export date formatter ready")

	return &ServiceContainer{
		NotificationService: NewNotificationService(repos.OrderRepo, config.Logger),
		ExportService:       NewExportService(repos.OrderRepo, repos.ProfileRepo, dates, config.DefaultCustomerName, config.Logger),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.NotificationService == nil {
		return fmt.Errorf("notification service is nil")
	}
	if sc.ExportService == nil {
		return fmt.Errorf("export service is nil")
	}
	return nil
}
