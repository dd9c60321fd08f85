package handlers

// @title Order Functions API
// @version 1.0
// @description Order confirmation and CSV export functions

// @host localhost:8081
// @BasePath /functions/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a user JWT or the service role key.

// @tag.name functions
// @tag.description Order confirmation and export
