package controllers

import (
	"net/http"

	"insurisk/internal/models"
	"insurisk/internal/repository"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	repo repository.QuestionnaireRepository
}

func NewQuestionnaireController(repo repository.QuestionnaireRepository) *QuestionnaireController {
	return &QuestionnaireController{repo: repo}
}

// SaveQuestionnaire godoc
// @Summary Save the full questionnaire
// @Description Create or replace the authenticated user's questionnaire (requires authentication)
// @Tags questionnaire
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.QuestionnaireData true "Questionnaire data"
// @Success 200 {object} map[string]interface{} "Questionnaire saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to save questionnaire"
// @Router /questionnaire [put]
func (qc *QuestionnaireController) SaveQuestionnaire(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	var data models.QuestionnaireData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	questionnaire := &models.Questionnaire{
		UserID:       userID.(uint),
		Demographics: data.Demographics,
		Health:       data.Health,
		Lifestyle:    data.Lifestyle,
		Financial:    data.Financial,
	}

	if err := qc.repo.Save(questionnaire); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save questionnaire",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Questionnaire saved successfully",
		"data":    questionnaire,
	})
}

// SaveQuestionnaireSection godoc
// @Summary Save one questionnaire section
// @Description Create or update a single wizard section without touching the others (requires authentication)
// @Tags questionnaire
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param section path string true "Section name (demographics, health, lifestyle, financial)"
// @Param request body models.QuestionnaireData true "Questionnaire data with the named section filled"
// @Success 200 {object} map[string]interface{} "Section saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid section or body"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to save section"
// @Router /questionnaire/{section} [patch]
func (qc *QuestionnaireController) SaveQuestionnaireSection(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	section := c.Param("section")
	switch section {
	case "demographics", "health", "lifestyle", "financial":
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid section name",
			"error":   "Section must be one of: demographics, health, lifestyle, financial",
		})
		return
	}

	var data models.QuestionnaireData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	questionnaire := &models.Questionnaire{
		UserID:       userID.(uint),
		Demographics: data.Demographics,
		Health:       data.Health,
		Lifestyle:    data.Lifestyle,
		Financial:    data.Financial,
	}

	if err := qc.repo.UpsertSection(userID.(uint), section, questionnaire); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save section",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Section saved successfully",
	})
}

// GetQuestionnaire godoc
// @Summary Get the stored questionnaire
// @Description Retrieve the authenticated user's questionnaire (requires authentication)
// @Tags questionnaire
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Questionnaire retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Questionnaire not found"
// @Router /questionnaire [get]
func (qc *QuestionnaireController) GetQuestionnaire(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	questionnaire, err := qc.repo.FindByUserID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Questionnaire not found",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Questionnaire retrieved successfully",
		"data":    questionnaire,
	})
}

// DeleteQuestionnaire godoc
// @Summary Delete the stored questionnaire
// @Description Remove the authenticated user's questionnaire (requires authentication)
// @Tags questionnaire
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Questionnaire deleted successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to delete questionnaire"
// @Router /questionnaire [delete]
func (qc *QuestionnaireController) DeleteQuestionnaire(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized access",
		})
		return
	}

	if err := qc.repo.Delete(userID.(uint)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete questionnaire",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Questionnaire deleted successfully",
	})
}
