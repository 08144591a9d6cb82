package utils

import (
	"fmt"
	"log"
	mathrand "math/rand"
	"os"
	"time"

	"insurisk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const DefaultNumUsers = 100

var (
	seedCities      = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Hyderabad", "Pune", "Ahmedabad"}
	seedGenders     = []string{"male", "female", "other"}
	seedMarital     = []string{"single", "married", "divorced", "widowed"}
	seedOccupations = []string{"salaried", "self-employed", "business", "student", "retired", "homemaker"}
	seedSmoking     = []string{"never", "former", "current"}
	seedAlcohol     = []string{"never", "occasional", "regular"}
)

func generateTestPassword() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("TestPassword123!"), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("failed to hash test password: %v", err)
	}
	return string(hash)
}

func connectToSingleDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	return db, nil
}

// SeedUsers creates numUsers demo users, each with a filled questionnaire.
func SeedUsers(numUsers int) error {
	db, err := connectToSingleDatabase()
	if err != nil {
		return err
	}

	password := generateTestPassword()
	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))

	for i := 1; i <= numUsers; i++ {
		dob := fmt.Sprintf("%d-%02d-%02d", 1955+rng.Intn(50), 1+rng.Intn(12), 1+rng.Intn(28))
		city := seedCities[rng.Intn(len(seedCities))]

		user := models.User{
			Name:     fmt.Sprintf("Test User %d", i),
			Email:    fmt.Sprintf("testuser%d@example.com", i),
			Password: password,
			DOB:      &dob,
			City:     &city,
			Verified: true,
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("error seeding user %d: %v", i, err)
		}

		questionnaire := buildDemoQuestionnaire(rng, user.ID, dob, city)
		if err := db.Create(questionnaire).Error; err != nil {
			return fmt.Errorf("error seeding questionnaire for user %d: %v", user.ID, err)
		}

		if i%50 == 0 {
			log.Printf("Seeded %d users", i)
		}
	}

	log.Printf("Successfully seeded %d users with questionnaires", numUsers)
	return nil
}

func buildDemoQuestionnaire(rng *mathrand.Rand, userID uint, dob, city string) *models.Questionnaire {
	gender := seedGenders[rng.Intn(len(seedGenders))]
	marital := seedMarital[rng.Intn(len(seedMarital))]
	education := "graduate"
	occupation := seedOccupations[rng.Intn(len(seedOccupations))]
	dependents := rng.Intn(4)
	soleProvider := rng.Intn(2) == 0

	height := 150.0 + rng.Float64()*40
	weight := 45.0 + rng.Float64()*50
	bp := fmt.Sprintf("%d/%d", 100+rng.Intn(50), 65+rng.Intn(30))
	heartRate := 58 + rng.Intn(40)
	bloodSugar := 75 + rng.Intn(70)
	smoking := seedSmoking[rng.Intn(len(seedSmoking))]
	yearsSmoking := 0
	if smoking != "never" {
		yearsSmoking = 1 + rng.Intn(20)
	}
	alcohol := seedAlcohol[rng.Intn(len(seedAlcohol))]

	exercise := rng.Intn(8)
	sleep := 5.0 + rng.Float64()*4
	stress := 1 + rng.Intn(10)

	income := 300000.0 + rng.Float64()*1500000
	coverage := 500000.0 + float64(rng.Intn(20))*250000
	budget := 1000.0 + rng.Float64()*5000
	term := 10 + rng.Intn(25)
	hasDebt := rng.Intn(2) == 0
	hasSavings := rng.Intn(2) == 0
	hasCoverage := rng.Intn(3) == 0
	investment := "medium"
	insuranceType := "term life"

	return &models.Questionnaire{
		UserID: userID,
		Demographics: models.DemographicsSection{
			DateOfBirth:    &dob,
			Gender:         &gender,
			MaritalStatus:  &marital,
			Education:      &education,
			City:           &city,
			Occupation:     &occupation,
			Dependents:     &dependents,
			IsSoleProvider: &soleProvider,
		},
		Health: models.HealthSection{
			Height:             &height,
			Weight:             &weight,
			BloodPressure:      &bp,
			RestingHeartRate:   &heartRate,
			FastingBloodSugar:  &bloodSugar,
			SmokingStatus:      &smoking,
			YearsSmoking:       &yearsSmoking,
			AlcoholConsumption: &alcohol,
			MedicalConditions:  []string{},
		},
		Lifestyle: models.LifestyleSection{
			ExerciseDaysPerWeek: &exercise,
			SleepHours:          &sleep,
			StressLevel:         &stress,
			DietFrequency: map[string]string{
				"junk_food":      "weekly",
				"fruits_veggies": "daily",
				"non_veg":        "weekly",
			},
		},
		Financial: models.FinancialSection{
			AnnualIncome:         &income,
			CoverageAmount:       &coverage,
			MonthlyPremiumBudget: &budget,
			PolicyTermYears:      &term,
			HasExistingCoverage:  &hasCoverage,
			HasDebt:              &hasDebt,
			HasSavings:           &hasSavings,
			InvestmentCapacity:   &investment,
			InsuranceType:        &insuranceType,
		},
	}
}

// CleanupTestUsers removes seeded users and their questionnaires.
func CleanupTestUsers() error {
	db, err := connectToSingleDatabase()
	if err != nil {
		return err
	}

	var users []models.User
	if err := db.Where("email LIKE ?", "testuser%@example.com").Find(&users).Error; err != nil {
		return fmt.Errorf("failed to list test users: %v", err)
	}

	for _, user := range users {
		db.Where("user_id = ?", user.ID).Delete(&models.Questionnaire{})
		db.Where("user_id = ?", user.ID).Delete(&models.RiskHistory{})
		db.Where("user_id = ?", user.ID).Delete(&models.PredictionLog{})
		db.Where("user_id = ?", user.ID).Delete(&models.AnalysisJob{})
	}

	result := db.Where("email LIKE ?", "testuser%@example.com").Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup test users: %v", result.Error)
	}

	log.Printf("Deleted %d test users", result.RowsAffected)
	return nil
}

func GetUserCount() (int64, error) {
	db, err := connectToSingleDatabase()
	if err != nil {
		return 0, err
	}

	var count int64
	result := db.Model(&models.User{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count users: %v", result.Error)
	}

	return count, nil
}

func VerifyTestUser(userIndex int) error {
	db, err := connectToSingleDatabase()
	if err != nil {
		return err
	}

	email := fmt.Sprintf("testuser%d@example.com", userIndex)
	var user models.User
	result := db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return fmt.Errorf("test user %s not found: %v", email, result.Error)
	}

	log.Printf("Test user %s exists (ID: %d, Verified: %t)", email, user.ID, user.Verified)
	return nil
}
