package domain

import "time"

// FeedbackEntry is one user feedback record. Entries are append-only:
// nothing in the system updates or deletes them, and submitting feedback
// never touches product data.
type FeedbackEntry struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Mood        string    `json:"mood"`       // detected label the user was shown
	Confidence  float64   `json:"confidence"` // 0..1 at detection time
	Rating      int       `json:"rating"`     // 1..5
	Comment     string    `json:"comment,omitempty"`
	ProductID   string    `json:"product_id,omitempty"`  // specific product the feedback refers to
	AnalysisID  string    `json:"analysis_id,omitempty"` // ephemeral correlation id from the analysis
	Recommended int       `json:"recommended"`           // how many products were shown
}
