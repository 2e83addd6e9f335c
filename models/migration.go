package models

import (
	"log"

	"github.com/mmdatafocus/practice_backend/config"
)

func Migrate() {
	db := config.GetDB()
	if db == nil {
		log.Println("skipping migration: database not connected")
		return
	}

	err := db.AutoMigrate(
		&User{},
		&Client{},
		&Service{},
		&Task{},
		&ComplianceItem{},
		&Document{},
		&LetterTemplate{},
	)
	if err != nil {
		log.Printf("auto-migration failed: %v", err)
	}
}
