package scheduler

import "time"

// Helper is an employee who can be sent to a store.
type Helper struct {
	Name string `json:"name"`
	// Load is the number of store assignments the helper holds in the month,
	// suggestions included.
	Load int     `json:"load"`
	Days float64 `json:"days"`
}

// Request is an unfilled store help request.
type Request struct {
	Date      time.Time
	Store     string
	TimeRange string
	Span      Span
}

// Suggestion pairs a help request with a helper.
type Suggestion struct {
	Date      string `json:"date"`
	Store     string `json:"store"`
	TimeRange string `json:"time_range"`
	Employee  string `json:"employee"`
}

// ConflictReason explains why a request got no suggestion.
type ConflictReason struct {
	Date    string   `json:"date"`
	Store   string   `json:"store"`
	Reasons []string `json:"reasons"`
}

// Result is the outcome of one suggestion run.
type Result struct {
	Suggestions   []Suggestion     `json:"suggestions"`
	Conflicts     []ConflictReason `json:"conflicts,omitempty"`
	FairnessScore float64          `json:"fairness_score"`
	Helpers       []*Helper        `json:"helpers"`
}
