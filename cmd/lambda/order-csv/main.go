package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"order-functions-api/internal/handlers"
	"order-functions-api/pkg/lambda"
	"order-functions-api/pkg/server"
)

func main() {
	cm := lambda.GetConnectionManager()

	handler := cm.Handler(handlers.Preflight, func(c *server.Container) lambda.HandlerFunc {
		return handlers.NewExportHandler(c.ExportService, c.Resolver, c.Logger).HandleExport
	})

	awslambda.Start(lambda.APIGatewayHandler(handler))
}
