package models

// Match is a backend-computed association between one lost report and one
// found report. The nested items are snapshots serialized with the match.
type Match struct {
	ID              int64       `json:"id"`
	LostItem        *ReportItem `json:"lost_item"`
	FoundItem       *ReportItem `json:"found_item"`
	MatchType       string      `json:"match_type"`
	ConfidenceScore float64     `json:"confidence_score"`
	Status          string      `json:"status"`
	CreatedAt       string      `json:"created_at,omitempty"`
	UpdatedAt       string      `json:"updated_at,omitempty"`
}
