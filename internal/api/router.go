package api

import (
	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/logging"
)

// NewRouter wires every endpoint. Factory-scoped routes take the factory
// name as the path parameter, which is what the existing client sends.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	// Health and readiness endpoints (no auth required)
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/factories", handler.ListFactories)
		api.POST("/factories", handler.CreateFactory)

		api.POST("/users", handler.CreateUser)
		api.GET("/users/:id", handler.GetUserByID)

		api.POST("/login", handler.Login)
		api.GET("/auth/current-user", handler.CurrentUser)
		api.POST("/logout", handler.Logout)

		api.GET("/dashboard/:factoryId", handler.GetDashboard)

		api.GET("/production/:factoryId", handler.ListProductionLines)
		api.POST("/production", handler.CreateProductionLine)
		api.PATCH("/production/:id", handler.UpdateProductionLine)

		api.GET("/inventory/:factoryId", handler.ListInventory)
		api.POST("/inventory", handler.CreateInventoryItem)
		api.PATCH("/inventory/:id", handler.UpdateInventoryItem)

		api.GET("/workforce/:factoryId", handler.ListWorkforce)
		api.POST("/workforce", handler.CreateWorkforceDepartment)
		api.PATCH("/workforce/:id", handler.UpdateWorkforceDepartment)

		api.GET("/alerts/:factoryId", handler.ListAlerts)
		api.POST("/alerts", handler.CreateAlert)
		api.PATCH("/alerts/:id", handler.UpdateAlert)
	}

	return router
}
