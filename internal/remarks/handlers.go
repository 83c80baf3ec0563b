package remarks

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

// GetRemarkHandler returns the owner's remark record. An owner with no
// saved record gets a synthetic empty one, never a 404.
func GetRemarkHandler(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	var remark Remark
	err := db.DB.First(&remark, "owner_email = ?", owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.JSON(w, http.StatusOK, Remark{OwnerEmail: owner, Remarks: ""})
			return
		}
		log.Println("Failed to fetch remark: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, remark)
}

// SetRemarkHandler upserts the remark for an owner. Only the authenticated
// owner may write it.
func SetRemarkHandler(w http.ResponseWriter, r *http.Request) {
	var req Remark

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.OwnerEmail == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing owner_email")
		return
	}

	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok || ident.Email != req.OwnerEmail {
		httputil.Error(w, http.StatusForbidden, "Only owner can edit remarks")
		return
	}

	req.Remarks = utils.NormalizeText(req.Remarks)

	var existing Remark
	err := db.DB.First(&existing, "owner_email = ?", req.OwnerEmail).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = db.DB.Create(&req).Error
	case err == nil:
		err = db.DB.Model(&existing).Update("remarks", req.Remarks).Error
	}
	if err != nil {
		log.Println("Failed to save remark: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.Message(w, "Saved")
}
