package main

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/config"
)

// Recovery tool: promotes a user to ADMIN directly in the database, for
// when the last admin account is lost. Run from the backend directory:
//
//	go run scripts/promote_admin.go                   (list users)
//	go run scripts/promote_admin.go --promote <name>  (promote by username)

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:50"`
	Email    string `gorm:"size:255"`
	Role     string `gorm:"size:20"`
	IsActive bool
}

func (User) TableName() string { return "users" }

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		dialector = sqlite.Open(cfg.Database.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 2 && os.Args[1] == "--promote" {
		username := os.Args[2]

		var user User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			fmt.Printf("User %q not found: %v\n", username, err)
			os.Exit(1)
		}

		if user.Role == "ADMIN" {
			fmt.Printf("User %q is already an admin\n", username)
			return
		}

		updates := map[string]interface{}{"role": "ADMIN", "is_active": true}
		if err := db.Model(&User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			fmt.Printf("Failed to promote %q: %v\n", username, err)
			os.Exit(1)
		}

		fmt.Printf("Promoted %q (id=%d) to ADMIN\n", username, user.ID)
		return
	}

	var users []User
	if err := db.Order("id").Find(&users).Error; err != nil {
		fmt.Printf("Failed to read users: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d users:\n\n", len(users))
	for _, u := range users {
		active := "active"
		if !u.IsActive {
			active = "inactive"
		}
		fmt.Printf("  id=%-4d %-20s %-30s %-10s %s\n", u.ID, u.Username, u.Email, u.Role, active)
	}

	fmt.Println("\nTo promote a user, run: go run scripts/promote_admin.go --promote <username>")
}
