package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	orderRepo repositories.OrderRepository
	logger    *logrus.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(orderRepo repositories.OrderRepository, logger *logrus.Logger) NotificationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &notificationService{orderRepo: orderRepo, logger: logger}
}

func (s *notificationService) SendOrderConfirmation(ctx context.Context, scope repositories.AccessScope, orderID, customerEmail string) (*models.OrderDetails, error) {
	order, err := s.orderRepo.GetOrderDetails(ctx, scope, orderID)
	if err != nil {
		return nil, &OrderFetchError{Err: err}
	}

	entry := s.logger.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"scope":    scope.String(),
	})
	entry.Info("📧 SENDING ORDER CONFIRMATION EMAIL:")
	entry.Infof("To: %s", customerEmail)
	entry.Infof("Order ID: %s", order.OrderID)
	entry.Infof("Customer: %s", order.CustomerName)
	entry.Infof("Total: $%s", order.OrderTotal.String())
	entry.Infof("Items: %d", order.TotalItems)

	return order, nil
}
