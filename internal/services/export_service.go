package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"
)

// DefaultCustomerName is used in exports when the purchaser has no profile name
const DefaultCustomerName = "Cliente"

// exportService implements the ExportService interface
type exportService struct {
	orderRepo   repositories.OrderRepository
	profileRepo repositories.ProfileRepository
	dates       DateFormatter
	defaultName string
	logger      *logrus.Logger
}

// NewExportService creates a new export service instance
func NewExportService(
	orderRepo repositories.OrderRepository,
	profileRepo repositories.ProfileRepository,
	dates DateFormatter,
	defaultName string,
	logger *logrus.Logger,
) ExportService {
	if defaultName == "" {
		defaultName = DefaultCustomerName
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &exportService{
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		dates:       dates,
		defaultName: defaultName,
		logger:      logger,
	}
}

func (s *exportService) ExportOrderCSV(ctx context.Context, scope repositories.AccessScope, orderID string) (*OrderExport, error) {
	order, err := s.orderRepo.GetOrderWithItems(ctx, scope, orderID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, &OrderFetchError{Err: err}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := order.Validate(); err != nil {
		return nil, &OrderFetchError{Err: err}
	}

	customerName := s.customerName(ctx, scope, order)

	s.logger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"line_items": len(order.Items),
		"units":      order.ItemCount(),
	}).Debug("Rendering order CSV")

	return &OrderExport{
		OrderID:      order.ID,
		CustomerName: customerName,
		Filename:     "order-" + order.ID + ".csv",
		Content:      RenderOrderCSV(order, customerName, s.dates),
	}, nil
}

// customerName looks up the purchaser's display name. Any failure falls back
// to the default name; it never fails the export.
func (s *exportService) customerName(ctx context.Context, scope repositories.AccessScope, order *models.Order) string {
	var (
		profile *models.PurchaserProfile
		err     error
	)
	if order.UserID == "" {
		err = errors.Wrap(repositories.ErrNotFound, "order has no owner")
	} else {
		profile, err = s.profileRepo.GetByID(ctx, scope, order.UserID)
	}

	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"user_id":  order.UserID,
			"error":    err.Error(),
		}).Info("Profile not found, using default name")
		return s.defaultName
	}

	if name := profile.DisplayName(); name != "" {
		return name
	}
	return s.defaultName
}
