package database

import (
	"log"

	"insurisk/internal/models"
)

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Questionnaire{},
		&models.RiskHistory{},
		&models.PredictionLog{},
		&models.AnalysisJob{},
	)

	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
