package routes

import (
	"insurisk/internal/controllers"
	"insurisk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAssessmentRoutes(router *gin.Engine, assessmentController *controllers.AssessmentController) {
	assessmentRoutes := router.Group("/assessment")
	assessmentRoutes.GET("/predict/health", assessmentController.TestMLConnection)
	assessmentRoutes.Use(middleware.AuthMiddleware())
	{
		assessmentRoutes.POST("/", assessmentController.RunAssessment)
		assessmentRoutes.POST("/async", assessmentController.StartAsyncAssessment)

		assessmentRoutes.GET("/jobs/:job_id", assessmentController.GetJobStatus)
		assessmentRoutes.GET("/jobs/:job_id/result", assessmentController.GetJobResult)
		assessmentRoutes.DELETE("/jobs/:job_id", assessmentController.CancelJob)

		assessmentRoutes.GET("/progressive", assessmentController.GetProgressivePrediction)

		assessmentRoutes.GET("/me", assessmentController.GetUserAssessments)
		assessmentRoutes.GET("/me/date-range", assessmentController.GetAssessmentsByDateRange)
		assessmentRoutes.GET("/me/score", assessmentController.GetAssessmentScoreByDate)
		assessmentRoutes.GET("/me/latest", assessmentController.GetLatestAssessment)

		assessmentRoutes.GET("/:id", assessmentController.GetAssessmentByID)
		assessmentRoutes.DELETE("/:id", assessmentController.DeleteAssessment)
	}
}
