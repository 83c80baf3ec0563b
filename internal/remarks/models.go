package remarks

// Remark is the single free-text annotation each owner may keep on their
// calendar. One row per owner, updated in place.
type Remark struct {
	OwnerEmail string `gorm:"primaryKey" json:"owner_email"`
	Remarks    string `json:"remarks"`
}
