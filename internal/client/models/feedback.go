package models

// Feedback is a public note a user leaves after a handover.
type Feedback struct {
	ID        int64  `json:"id"`
	LostItem  int64  `json:"lost_item,omitempty"`
	FoundItem int64  `json:"found_item,omitempty"`
	CreatedBy int64  `json:"created_by,omitempty"`
	Rating    int    `json:"rating"`
	Note      string `json:"note,omitempty"`
	IsPublic  bool   `json:"is_public"`
	CreatedAt string `json:"created_at,omitempty"`
}
