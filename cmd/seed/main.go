package main

import (
	"log"
	"os"

	"github.com/eneaslivv/livvos/internal/model"
	"github.com/eneaslivv/livvos/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds a demo user with a small address book so the resolver has
// something to disambiguate against during local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo data...")

	user := seedUser(db)
	seedContacts(db, user.Id)

	color.Green("✅ Seed completed for user %s (%s)", user.FullName, user.Email)
}

func seedUser(db *gorm.DB) *model.User {
	user := model.User{
		Email:    "demo@livvos.local",
		FullName: "Demo Usuario",
		Status:   "active",
		Language: "es",
		Timezone: "America/Argentina/Buenos_Aires",
	}

	if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
		color.Red("Failed to seed user: %v", err)
		os.Exit(1)
	}
	color.Yellow("  user: %s", user.Email)
	return &user
}

func seedContacts(db *gorm.DB, userId uuid.UUID) {
	contacts := []model.Contact{
		{
			UserId:      userId,
			DisplayName: "Juan Pérez",
			Phone:       "+5491160000001",
			PlatformIds: datatypes.JSONMap{"whatsapp": "+5491160000001"},
		},
		{
			UserId:      userId,
			DisplayName: "Juan López",
			Phone:       "+5491160000002",
			PlatformIds: datatypes.JSONMap{"whatsapp": "+5491160000002"},
		},
		{
			UserId:      userId,
			DisplayName: "María García",
			Phone:       "+5491160000003",
			Email:       "maria@example.com",
			PlatformIds: datatypes.JSONMap{"whatsapp": "+5491160000003", "telegram": "@mariag"},
		},
		{
			UserId:      userId,
			DisplayName: "Mamá",
			Phone:       "+5491160000004",
			PlatformIds: datatypes.JSONMap{"whatsapp": "+5491160000004"},
		},
	}

	for _, c := range contacts {
		if err := db.Where(model.Contact{UserId: userId, DisplayName: c.DisplayName}).FirstOrCreate(&c).Error; err != nil {
			color.Red("Failed to seed contact %s: %v", c.DisplayName, err)
			continue
		}
		color.Yellow("  contact: %s", c.DisplayName)
	}
}
