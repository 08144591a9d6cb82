package routes

import (
	"insurisk/internal/controllers"
	"insurisk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController) {
	userRoutesPublic := router.Group("/user")
	{
		userRoutesPublic.POST("/register", userController.Register)
		userRoutesPublic.POST("/login", userController.Login)
	}
	userRoutesPrivate := router.Group("/user")
	userRoutesPrivate.Use(middleware.AuthMiddleware())
	{
		userRoutesPrivate.GET("/me", userController.GetCurrentUser)
		userRoutesPrivate.PATCH("/me", userController.UpdateCurrentUser)
		userRoutesPrivate.DELETE("/me", userController.DeleteCurrentUser)
	}
}
