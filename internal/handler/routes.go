package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers bundles every HTTP handler mounted by RegisterRoutes
type Handlers struct {
	Transactions *TransactionHandler
	Analytics    *AnalyticsHandler
	Goals        *GoalHandler
	Budgets      *BudgetHandler
	Categories   *CategoryHandler
	Exports      *ExportHandler
	WebSocket    *WebSocketHandler
}

// RegisterRoutes sets up all API routes at the server root
func RegisterRoutes(e *echo.Echo, h Handlers, servers []Server) {
	e.GET("/health", HealthCheck)

	transactions := e.Group("/transactions")
	transactions.GET("", h.Transactions.GetTransactions)
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.PUT("/:id", h.Transactions.UpdateTransaction)
	transactions.DELETE("/:id", h.Transactions.DeleteTransaction)

	analytics := e.Group("/analytics")
	analytics.GET("/summary", h.Analytics.GetSummary)
	analytics.GET("/trends", h.Analytics.GetTrends)

	goals := e.Group("/goals")
	goals.GET("", h.Goals.GetGoals)
	goals.POST("", h.Goals.CreateGoal)
	goals.PUT("/:id/progress", h.Goals.AddProgress)
	goals.PUT("/:id", h.Goals.UpdateGoal)
	goals.DELETE("/:id", h.Goals.DeleteGoal)

	budgets := e.Group("/budgets")
	budgets.GET("", h.Budgets.GetBudgets)
	budgets.POST("", h.Budgets.UpsertBudget)

	e.GET("/categories", h.Categories.GetCategories)
	e.POST("/exports/transactions", h.Exports.ExportTransactions)

	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", NewOpenAPI3Handler(servers))
}
