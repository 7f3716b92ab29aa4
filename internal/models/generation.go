package models

// GenerationRequest is the body sent to the music endpoint
type GenerationRequest struct {
	Scale  string `json:"scale"`  // Wire value, e.g. "C_Major"
	Length int    `json:"length"` // Number of notes, always > 0
}
