package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pawtrail/backend/internal/api"
	"github.com/pawtrail/backend/internal/middleware"
)

// SetupRouter configures the application routes. Everything past register
// and login sits behind the auth middleware; handlers then authorize the
// ownership chain per resource.
func SetupRouter(
	authHandler *api.AuthHandler,
	petHandler *api.PetHandler,
	healthRecordHandler *api.HealthRecordHandler,
	workoutHandler *api.WorkoutHandler,
	dashboardHandler *api.DashboardHandler,
	validator middleware.TokenValidator,
	corsOrigins []string,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/user", authHandler.CurrentUser)

		petHandler.RegisterRoutes(protected)
		healthRecordHandler.RegisterRoutes(protected)
		workoutHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
	}

	return router
}
