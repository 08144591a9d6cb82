package routes

import (
	"insurisk/internal/controllers"
	"insurisk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterQuestionnaireRoutes(router *gin.Engine, questionnaireController *controllers.QuestionnaireController) {
	questionnaireRoutes := router.Group("/questionnaire")
	questionnaireRoutes.Use(middleware.AuthMiddleware())
	{
		questionnaireRoutes.PUT("/", questionnaireController.SaveQuestionnaire)
		questionnaireRoutes.GET("/", questionnaireController.GetQuestionnaire)
		questionnaireRoutes.DELETE("/", questionnaireController.DeleteQuestionnaire)
		questionnaireRoutes.PATCH("/:section", questionnaireController.SaveQuestionnaireSection)
	}
}
