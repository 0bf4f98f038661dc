package domain

import "time"

// Configuration is a user's in-progress case design: the uploaded image,
// its crop, and the selected case options. Option fields stay empty until
// the design step saves them.
type Configuration struct {
	ID              string    `json:"id"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	ImageURL        string    `json:"imageUrl"`
	ImagePublicID   string    `json:"-"`
	CroppedImageURL string    `json:"croppedImageUrl,omitempty"`
	CroppedPublicID string    `json:"-"`
	Color           string    `json:"color,omitempty"`
	Model           string    `json:"model,omitempty"`
	Material        string    `json:"material,omitempty"`
	Finish          string    `json:"finish,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Configured reports whether all four option values have been saved.
func (c Configuration) Configured() bool {
	return c.Color != "" && c.Model != "" && c.Material != "" && c.Finish != ""
}
