package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"order-functions-api/internal/auth"
	"order-functions-api/internal/services"
	"order-functions-api/pkg/lambda"
)

// ExportHandler serves the generate-order-csv function
type ExportHandler struct {
	exportService services.ExportService
	resolver      *auth.Resolver
	logger        *logrus.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportService, resolver *auth.Resolver, logger *logrus.Logger) *ExportHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &ExportHandler{
		exportService: exportService,
		resolver:      resolver,
		logger:        logger,
	}
}

// HandleExport handles the CSV export request
// @Summary Export order as CSV
// @Description Renders the order, its line items and a TOTAL row as a CSV download
// @Tags functions
// @Accept json
// @Produce text/csv
// @Param request body ExportRequest true "Order to export"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /generate-order-csv [post]
func (h *ExportHandler) HandleExport(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if req.IsPreflight() {
		return Preflight(ctx, req)
	}

	input, err := parseExportRequest(req.Body)
	if err != nil {
		return h.fail(req, err.Error()), nil
	}
	if err := validate.Struct(input); err != nil {
		return errorResponse(statusFor(err), msgOrderIDRequired), nil
	}

	scope, err := h.resolver.Resolve(req.Header("Authorization"))
	if err != nil {
		return h.fail(req, (&services.OrderFetchError{Err: err}).Error()), nil
	}

	export, err := h.exportService.ExportOrderCSV(ctx, scope, input.OrderID)
	if err != nil {
		return h.fail(req, err.Error()), nil
	}

	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers: lambda.WithCORS(map[string]string{
			"Content-Type":        "text/csv",
			"Content-Disposition": `attachment; filename="` + export.Filename + `"`,
			"Cache-Control":       "no-cache",
		}),
		Body: []byte(export.Content),
	}, nil
}

func (h *ExportHandler) fail(req *lambda.Request, message string) *lambda.Response {
	h.logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"error":      message,
	}).Error("Error in generate-order-csv")
	return errorResponse(http.StatusInternalServerError, message)
}
