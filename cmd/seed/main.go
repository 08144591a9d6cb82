package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"insurisk/internal/utils"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numUsers := seedCmd.Int("users", utils.DefaultNumUsers, "Number of demo users to create")

	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	userIndex := checkCmd.Int("user", 1, "Test user index to verify")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])

		log.Printf("Starting user seeder with %d users", *numUsers)
		if err := utils.SeedUsers(*numUsers); err != nil {
			log.Fatalf("Error seeding users: %v", err)
		}

	case "check":
		checkCmd.Parse(os.Args[2:])

		if err := utils.VerifyTestUser(*userIndex); err != nil {
			log.Fatalf("Error verifying test user: %v", err)
		}

	case "cleanup":
		if err := utils.CleanupTestUsers(); err != nil {
			log.Fatalf("Error cleaning up test users: %v", err)
		}

	case "stats":
		count, err := utils.GetUserCount()
		if err != nil {
			log.Fatalf("Error getting stats: %v", err)
		}
		log.Printf("Total users: %d", count)

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Database utility tool for InsuRisk")
	fmt.Println("\nUsage:")
	fmt.Println("  db-tool COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed         Create demo users with filled questionnaires")
	fmt.Println("               Options:")
	fmt.Println("                 --users=N   Number of demo users to create (default: 100)")
	fmt.Println("")
	fmt.Println("  check        Verify a seeded test user exists")
	fmt.Println("               Options:")
	fmt.Println("                 --user=N    Test user index (default: 1)")
	fmt.Println("")
	fmt.Println("  cleanup      Delete seeded test users and their data")
	fmt.Println("")
	fmt.Println("  stats        Show total user count")
	fmt.Println("")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_HOST      Database host")
	fmt.Println("  DB_PORT      Database port")
	fmt.Println("  DB_USER      Database user")
	fmt.Println("  DB_PASSWORD  Database password")
	fmt.Println("  DB_NAME      Database name")
	fmt.Println("  DB_SSLMODE   Database SSL mode")
}
