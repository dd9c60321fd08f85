package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"order-functions-api/internal/auth"
	"order-functions-api/internal/services"
	"order-functions-api/pkg/lambda"
)

// ConfirmationHandler serves the order-confirmation function
type ConfirmationHandler struct {
	notificationService services.NotificationService
	resolver            *auth.Resolver
	logger              *logrus.Logger
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(notificationService services.NotificationService, resolver *auth.Resolver, logger *logrus.Logger) *ConfirmationHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConfirmationHandler{
		notificationService: notificationService,
		resolver:            resolver,
		logger:              logger,
	}
}

// ConfirmationOrder is the order summary echoed back to the caller
type ConfirmationOrder struct {
	ID       string      `json:"id"`
	Total    json.Number `json:"total" swaggertype:"number"`
	Status   string      `json:"status"`
	Customer string      `json:"customer"`
}

// ConfirmationResponse acknowledges a queued confirmation
type ConfirmationResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Order   ConfirmationOrder `json:"order"`
}

// HandleSend handles the order confirmation request
// @Summary Send order confirmation
// @Description Looks up the order summary and logs a confirmation email for the customer
// @Tags functions
// @Accept json
// @Produce json
// @Param request body ConfirmationRequest true "Order and recipient"
// @Success 200 {object} ConfirmationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /order-confirmation [post]
func (h *ConfirmationHandler) HandleSend(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.IsPreflight() {
		return Preflight(ctx, req)
	}

	input, err := parseConfirmationRequest(req.Body)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err.Error()), nil
	}
	if err := validate.Struct(input); err != nil {
		return errorResponse(statusFor(err), msgConfirmationFieldsRequired), nil
	}

	scope, err := h.resolver.Resolve(req.Header("Authorization"))
	if err != nil {
		return errorResponse(http.StatusInternalServerError, (&services.OrderFetchError{Err: err}).Error()), nil
	}

	order, err := h.notificationService.SendOrderConfirmation(ctx, scope, input.OrderID, input.CustomerEmail)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"order_id":   input.OrderID,
			"request_id": req.RequestID,
			"error":      err.Error(),
		}).Error("Error in order-confirmation")
		return errorResponse(http.StatusInternalServerError, err.Error()), nil
	}

	return jsonResponse(http.StatusOK, ConfirmationResponse{
		Success: true,
		Message: "Order confirmation email queued successfully",
		Order: ConfirmationOrder{
			ID:       order.OrderID,
			Total:    json.Number(order.OrderTotal.String()),
			Status:   order.OrderStatus,
			Customer: order.CustomerName,
		},
	}), nil
}
