// seed-admin creates or updates the admin console user (username: practiceAdmin).
// Admin users have role 'A'; the backend returns role "Admin" on login.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/utils"
	"gorm.io/gorm"
)

const (
	adminUsername = "practiceAdmin"
	adminPassword = "Pr@cticeAdmin"
	adminName     = "Practice Admin"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Where("username = ?", adminUsername).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"password":  string(hashed),
			"name":      adminName,
			"role":      models.UserRoleAdmin,
			"is_active": true,
		}
		if err := db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("updated admin user %q (id=%d)\n", adminUsername, existing.ID)
	case err == gorm.ErrRecordNotFound:
		user := models.User{
			Username: adminUsername,
			Name:     adminName,
			Password: string(hashed),
			IsActive: utils.NewTrue(),
			Role:     models.UserRoleAdmin,
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created admin user %q (id=%d)\n", adminUsername, user.ID)
	default:
		fmt.Fprintf(os.Stderr, "failed to lookup admin user: %v\n", err)
		os.Exit(1)
	}
}
