package domain

import "time"

// Instance is the singleton server identity, created on first boot and
// advertised over mDNS for LAN discovery.
type Instance struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
