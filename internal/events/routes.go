package events

import (
	"net/http"

	"github.com/PocketCal/PC-Backend/internal/middleware"
	"github.com/PocketCal/PC-Backend/internal/token"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	verifier := token.HMACVerifier{}

	r.Use(middleware.AuthMiddleware(verifier))

	r.Get("/{ownerEmail}", ListEventsHandler)
	r.Post("/", CreateEventHandler)
	r.Put("/{id}", UpdateEventHandler)
	r.Delete("/{id}", DeleteEventHandler)

	return r
}
