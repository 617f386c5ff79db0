package domain

// Playlist is a mood-matched playlist suggestion from the configured
// provider. Purely decorative; the server never stores these.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	Tracks      int    `json:"tracks"`
	Owner       string `json:"owner,omitempty"`
}
