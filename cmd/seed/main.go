package main

import (
	"encoding/json"
	"log"
	"os"

	"ai-notes-be/internal/model"
	"ai-notes-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const demoEmail = "demo@example.com"

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding demo account...")

	var user model.User
	if err := db.Where("email = ?", demoEmail).First(&user).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Error: Failed to hash demo password:", err)
		}
		user = model.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			FullName:     "Demo User",
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("Error: Failed to create demo user:", err)
		}
		log.Printf("Created demo user: %s", demoEmail)
	} else {
		log.Printf("Demo user '%s' already exists, skipping...", demoEmail)
	}

	log.Println("Seeding sample notes...")

	notes := []struct {
		Title    string
		Content  string
		Category string
		Tags     []string
		IsPinned bool
		Color    string
	}{
		{
			Title:    "Weekly planning",
			Content:  "Review open tasks, schedule the sprint demo and prepare the grocery list for the weekend.",
			Category: "personal",
			Tags:     []string{"planning", "weekly"},
			IsPinned: true,
			Color:    "#fef3c7",
		},
		{
			Title:    "Project kickoff notes",
			Content:  "The new reporting dashboard starts next month. Stakeholders want a first prototype within three weeks.",
			Category: "work",
			Tags:     []string{"project", "dashboard"},
			Color:    "#dbeafe",
		},
		{
			Title:    "Budget overview",
			Content:  "Monthly costs are stable. Set aside the usual amount for savings and review the insurance renewal quote.",
			Category: "finance",
			Tags:     []string{"budget", "savings"},
			Color:    "#dcfce7",
		},
	}

	for _, n := range notes {
		var existing model.Note
		if err := db.Where("user_id = ? AND title = ?", user.Id, n.Title).First(&existing).Error; err == nil {
			log.Printf("Note '%s' already exists, skipping...", n.Title)
			continue
		}

		tagsJSON, _ := json.Marshal(n.Tags)
		note := model.Note{
			UserId:   user.Id,
			Title:    n.Title,
			Content:  n.Content,
			Category: n.Category,
			Tags:     datatypes.JSON(tagsJSON),
			IsPinned: n.IsPinned,
			Color:    n.Color,
		}
		if err := db.Create(&note).Error; err != nil {
			log.Printf("Error creating note '%s': %v", n.Title, err)
		} else {
			log.Printf("Created note: %s", n.Title)
		}
	}

	log.Println("Seeding completed!")
}
