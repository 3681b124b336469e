package dto

// EvaluateResponse is written bare, outside the standard envelope, so
// existing clients of the evaluation form keep working.
type EvaluateResponse struct {
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	MatchPercentage float64  `json:"match_percentage"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
