package events

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/PocketCal/PC-Backend/internal/db"
	"github.com/PocketCal/PC-Backend/internal/httputil"
	"github.com/PocketCal/PC-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ListEventsHandler returns all events for an owner ordered by day and
// start time; created_at breaks ties so the order is stable.
func ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "ownerEmail")

	events := []Event{}
	if err := db.DB.
		Where("owner_email = ?", owner).
		Order("date, start, created_at").
		Find(&events).Error; err != nil {
		log.Println("Failed to fetch events: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, events)
}

func CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var event Event

	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if event.OwnerEmail == "" || event.Title == "" || event.Date == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing fields")
		return
	}

	event.ID = utils.GenerateUUID()
	event.Title = utils.NormalizeText(event.Title)
	if event.Notes != nil {
		normalized := utils.NormalizeText(*event.Notes)
		event.Notes = &normalized
	}

	if err := db.DB.Create(&event).Error; err != nil {
		log.Println("Failed to create event: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"id":      event.ID,
		"message": "Created",
	})
}

// canMutate restricts event mutation to the calendar owner plus the roles
// that manage calendars on someone's behalf.
func canMutate(ident utils.Identity, event Event) bool {
	if ident.Email == event.OwnerEmail {
		return true
	}
	return ident.Role == "secretary" || ident.Role == "boss"
}

func UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var event Event
	if err := db.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Println("Failed to fetch event: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok || !canMutate(ident, event) {
		httputil.Error(w, http.StatusForbidden, "Not allowed to modify this event")
		return
	}

	var req struct {
		Title string  `json:"title"`
		Date  string  `json:"date"`
		Start *string `json:"start"`
		End   *string `json:"end"`
		Notes *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	updates := map[string]any{
		"title": utils.NormalizeText(req.Title),
		"date":  req.Date,
		"start": req.Start,
		"end":   req.End,
		"notes": req.Notes,
	}
	if err := db.DB.Model(&event).Updates(updates).Error; err != nil {
		log.Println("Failed to update event: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.Message(w, "Updated")
}

func DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var event Event
	if err := db.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Println("Failed to fetch event: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok || !canMutate(ident, event) {
		httputil.Error(w, http.StatusForbidden, "Not allowed to modify this event")
		return
	}

	if err := db.DB.Delete(&event).Error; err != nil {
		log.Println("Failed to delete event: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.Message(w, "Deleted")
}
