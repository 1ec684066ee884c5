package model

import "time"

// Location is a resolved coordinate pair produced by the geocoder
// when a place is created. It is embedded in API responses under
// the `location` key, mirroring what clients already expect.
type Location struct {
	Lat float64 `json:"lat"` // places.lat
	Lng float64 `json:"lng"` // places.lng
}

// Place represents a row in the `places` table. Every place has
// exactly one creator; the CreatorID column and the creator's
// entry in `user_places` are written together inside one
// transaction so the two can never diverge.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short human-friendly title of the place.
//  Description – free-text description.
//  Address     – the free-text address the user typed in.
//  Location    – coordinates resolved from Address at creation time.
//  Image       – path of the stored place image.
//  CreatorID   – user ID of the place's creator.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Place struct {
	ID          uint64    `json:"id"`          // places.id
	Title       string    `json:"title"`       // places.title
	Description string    `json:"description"` // places.description
	Address     string    `json:"address"`     // places.address
	Location    Location  `json:"location"`    // places.lat / places.lng
	Image       string    `json:"image"`       // places.image
	CreatorID   uint64    `json:"creator"`     // places.creator_id
	CreatedAt   time.Time `json:"created_at"`  // places.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // places.updated_at
}
