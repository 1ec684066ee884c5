// Package queue defines message payloads exchanged over the message broker.
package queue

// PlaceCreatedEvent is published after a place has been committed to the
// database. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary database.
type PlaceCreatedEvent struct {
    PlaceID   uint64  `json:"place_id"`
    CreatorID uint64  `json:"creator_id"`
    Title     string  `json:"title"`
    Address   string  `json:"address"`
    Lat       float64 `json:"lat"`
    Lng       float64 `json:"lng"`
    CreatedAt string  `json:"created_at"`
}

// PlaceDeletedEvent is published after a place and its owned-set entry
// have been removed. Consumers use it for audit trails; the image file
// cleanup has already happened (or failed silently) by the time this
// message is observed.
type PlaceDeletedEvent struct {
    PlaceID   uint64 `json:"place_id"`
    CreatorID uint64 `json:"creator_id"`
    Title     string `json:"title"`
    DeletedAt string `json:"deleted_at"`
}
