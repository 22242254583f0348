package models

import "github.com/uptrace/bun"

// Track represents a harness racing track.
type Track struct {
	bun.BaseModel `bun:"table:tracks,alias:t"`

	TrackID       int     `bun:"track_id,pk,autoincrement" json:"trackID"`
	Name          string  `bun:"name,notnull,unique" json:"name"`
	Location      string  `bun:"location,notnull" json:"location"`
	Surface       string  `bun:"surface,notnull,default:'dirt'" json:"surface"`
	Circumference float64 `bun:"circumference" json:"circumference,omitempty"`
	Active        bool    `bun:"active,notnull,default:true" json:"active"`
}

// Track surface values.
const (
	SurfaceDirt      = "dirt"
	SurfaceSynthetic = "synthetic"
)
