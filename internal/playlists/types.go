package playlists

// Playlist is one recommended playlist, already filtered and cleaned.
type Playlist struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	Tracks      int    `json:"tracks"`
	Owner       string `json:"owner,omitempty"`
}

// Raw provider response types (internal).

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchResponse struct {
	Playlists struct {
		Items []*rawPlaylist `json:"items"`
	} `json:"playlists"`
}

// rawPlaylist mirrors the provider's playlist object. The items array can
// contain nulls, hence the pointer slice.
type rawPlaylist struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
	Owner struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

func (r *rawPlaylist) toPlaylist() Playlist {
	p := Playlist{
		Name:        r.Name,
		URL:         r.ExternalURLs.Spotify,
		Description: cleanDescription(r.Description),
		Tracks:      r.Tracks.Total,
		Owner:       r.Owner.DisplayName,
	}
	if len(r.Images) > 0 {
		p.ImageURL = r.Images[0].URL
	}
	return p
}
