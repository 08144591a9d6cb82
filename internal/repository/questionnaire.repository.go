package repository

import (
	"errors"

	"insurisk/internal/models"

	"gorm.io/gorm"
)

type QuestionnaireRepository interface {
	Save(q *models.Questionnaire) error
	FindByUserID(userID uint) (*models.Questionnaire, error)
	UpsertSection(userID uint, section string, q *models.Questionnaire) error
	Delete(userID uint) error
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db}
}

func (r *questionnaireRepository) Save(q *models.Questionnaire) error {
	var existing models.Questionnaire
	err := r.db.Where("user_id = ?", q.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(q).Error
	}
	if err != nil {
		return err
	}
	q.ID = existing.ID
	q.CreatedAt = existing.CreatedAt
	return r.db.Save(q).Error
}

func (r *questionnaireRepository) FindByUserID(userID uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := r.db.Where("user_id = ?", userID).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpsertSection writes one wizard section without clobbering the others,
// creating the row on first save.
func (r *questionnaireRepository) UpsertSection(userID uint, section string, q *models.Questionnaire) error {
	existing, err := r.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		q.UserID = userID
		return r.db.Create(q).Error
	}
	if err != nil {
		return err
	}

	switch section {
	case "demographics":
		existing.Demographics = q.Demographics
	case "health":
		existing.Health = q.Health
	case "lifestyle":
		existing.Lifestyle = q.Lifestyle
	case "financial":
		existing.Financial = q.Financial
	default:
		return errors.New("unknown questionnaire section: " + section)
	}

	return r.db.Save(existing).Error
}

func (r *questionnaireRepository) Delete(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Questionnaire{}).Error
}
