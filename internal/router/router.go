package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/investflow-dev/investflow/internal/handlers"
	"github.com/investflow-dev/investflow/internal/middleware"
	"github.com/investflow-dev/investflow/internal/types"
)

func NewRouter(authHandler *handlers.AuthHandler, investmentHandler *handlers.InvestmentHandler, userHandler *handlers.UserHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
		}

		investments := api.Group("/investments", middleware.AuthMiddleware())
		{
			investments.POST("", investmentHandler.Create)
			investments.GET("/my-requests", investmentHandler.ListMine)
			investments.GET("/managed-requests", investmentHandler.ListManaged)
			investments.GET("/escalated-requests", investmentHandler.ListEscalated)
			investments.GET("/all", investmentHandler.ListAll)

			investments.PUT("/:id/approve", investmentHandler.Approve)
			investments.PUT("/:id/reject", investmentHandler.Reject)
			investments.PUT("/:id/escalate", investmentHandler.Escalate)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", userHandler.List)
			users.GET("/subordinates", userHandler.Subordinates)
			users.GET("/:id", userHandler.Get)
			users.PUT("/role", userHandler.UpdateRole)
			users.PUT("/manager", userHandler.AssignManager)
		}
	}

	return r
}
