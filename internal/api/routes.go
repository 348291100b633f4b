package api

import (
	"net/http"

	"mapty/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the workout tracker API on router. defaultLocator is
// used by /map/locate when the client does not send its own position.
func SetupRoutes(router *gin.Engine, app *service.App, defaultLocator service.Locator) {
	mapHandler := NewMapHandler(app, defaultLocator)
	workoutHandler := NewWorkoutHandler(app)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		mapGroup := apiV1.Group("/map")
		{
			mapGroup.GET("", mapHandler.GetMap)
			mapGroup.POST("/locate", mapHandler.Locate)
			mapGroup.POST("/click", mapHandler.Click)
		}

		formGroup := apiV1.Group("/form")
		{
			formGroup.GET("", mapHandler.GetForm)
			formGroup.PUT("/type", mapHandler.SelectType)
		}

		workoutGroup := apiV1.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			// Debug affordance: wipes every workout and the persistence slot
			workoutGroup.DELETE("", workoutHandler.ResetWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.POST("/:id/activate", workoutHandler.ActivateWorkout)
		}
	}
}
