package main

import (
	"log"
	"net/http"

	"github.com/PocketCal/PC-Backend/internal/auth"
	"github.com/PocketCal/PC-Backend/internal/config"
	"github.com/PocketCal/PC-Backend/internal/db"
	"github.com/PocketCal/PC-Backend/internal/events"
	"github.com/PocketCal/PC-Backend/internal/httputil"
	"github.com/PocketCal/PC-Backend/internal/middleware"
	"github.com/PocketCal/PC-Backend/internal/remarks"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Calendar API running",
	})
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	db.Connect()

	auth.Init()
	events.Init()
	remarks.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(cfg))
	r.Mount("/events", events.SetupRoutes())
	r.Mount("/remarks", remarks.SetupRoutes())

	log.Println("Server listening on port :" + cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
