package models

// ItemKind says which collection a report belongs to. Lost and found reports
// share a shape but live behind separate API endpoints.
type ItemKind string

const (
	KindLost  ItemKind = "lost"
	KindFound ItemKind = "found"
)

// ItemStatus is the raw stored status of a report.
type ItemStatus string

const (
	StatusActive   ItemStatus = "active"
	StatusFound    ItemStatus = "found"
	StatusReturned ItemStatus = "returned"
	StatusInactive ItemStatus = "inactive"
)

// DisplayStatus is the reconciled, user-facing status of a report. It carries
// every ItemStatus value plus "pending": a found report its finder marked
// returned but whose owner has not yet confirmed receipt.
type DisplayStatus string

const DisplayPending DisplayStatus = "pending"

// Display converts a raw status unchanged.
func (s ItemStatus) Display() DisplayStatus { return DisplayStatus(s) }

// ReportItem is one lost or found report. Kind is not part of the wire
// format; the fetch layer stamps it from the endpoint the item came from.
type ReportItem struct {
	ID             int64      `json:"id"`
	Kind           ItemKind   `json:"-"`
	ItemName       string     `json:"item_name"`
	Description    string     `json:"description,omitempty"`
	Location       string     `json:"location,omitempty"`
	Latitude       float64    `json:"latitude,omitempty"`
	Longitude      float64    `json:"longitude,omitempty"`
	Image          string     `json:"image,omitempty"`
	ReporterName   string     `json:"reporter_name,omitempty"`
	ReporterEmail  string     `json:"reporter_email,omitempty"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
	PostedBy       *User      `json:"posted_by,omitempty"`
	DateLost       string     `json:"date_lost,omitempty"`
	DateFound      string     `json:"date_found,omitempty"`
	Contact        string     `json:"contact,omitempty"`
	Status         ItemStatus `json:"status"`
	CreatedAt      string     `json:"created_at,omitempty"`
}

// OwnedBy reports whether the item was posted by the given user.
func (r *ReportItem) OwnedBy(userID int64) bool {
	return r.PostedBy != nil && r.PostedBy.ID == userID
}

// AnnotatedItem pairs a report with its reconciled display status.
type AnnotatedItem struct {
	ReportItem
	DisplayStatus DisplayStatus `json:"display_status"`
}
