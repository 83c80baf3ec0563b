package auth

import (
	"log"

	"github.com/PocketCal/PC-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to auto-migrate users table: ", err)
	}
}
