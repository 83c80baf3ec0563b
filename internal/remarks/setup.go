package remarks

import (
	"log"

	"github.com/PocketCal/PC-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Remark{}); err != nil {
		log.Fatal("Failed to auto-migrate remarks table: ", err)
	}
}
