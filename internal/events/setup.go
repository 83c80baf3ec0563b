package events

import (
	"log"

	"github.com/PocketCal/PC-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Event{}); err != nil {
		log.Fatal("Failed to auto-migrate events table: ", err)
	}
}
