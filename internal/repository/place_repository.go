// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for places. A place belongs to exactly
// one creator, and each creator's owned set lives in the user_places table.
// The create and delete operations write both tables inside a single
// transaction so that a place's creator column and its membership in the
// owned set can never be observed out of sync. Confining the transaction to
// these two methods keeps the atomicity contract in one component instead of
// leaking session handling into handler code.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons

	"github.com/iliyamo/places-api/internal/model"
)

// PlaceRepo encapsulates all database queries related to places and
// the user_places owned set.
type PlaceRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewPlaceRepo constructs a PlaceRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup. There is no initialization logic beyond assigning the field.
func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

const placeColumns = "id, title, description, address, lat, lng, image, creator_id, created_at, updated_at"

func scanPlace(row interface{ Scan(...any) error }, p *model.Place) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Location.Lat, &p.Location.Lng, &p.Image, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a place by its ID. It returns ErrPlaceNotFound if no
// row is found.
func (r *PlaceRepo) GetByID(ctx context.Context, id uint64) (*model.Place, error) {
	const q = "SELECT " + placeColumns + " FROM places WHERE id = ?"
	var p model.Place
	if err := scanPlace(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDWithCreator fetches a place together with its creator's user
// record in one round trip. The delete flow needs the expanded creator
// to authorize the caller and to update the owned set afterwards. It
// returns ErrPlaceNotFound when the place is absent.
func (r *PlaceRepo) GetByIDWithCreator(ctx context.Context, id uint64) (*model.Place, *model.User, error) {
	const q = `SELECT p.id, p.title, p.description, p.address, p.lat, p.lng, p.image, p.creator_id, p.created_at, p.updated_at,
	                  u.id, u.name, u.email, u.image
	           FROM places p
	           JOIN users u ON u.id = p.creator_id
	           WHERE p.id = ?`
	var p model.Place
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Location.Lat, &p.Location.Lng, &p.Image, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrPlaceNotFound
		}
		return nil, nil, err
	}
	return &p, &u, nil
}

// ListByCreator returns every place in the given user's owned set,
// ordered by id. Membership is resolved through user_places rather
// than the creator column so the query observes exactly what the
// transactional writes maintain. An empty slice is returned when the
// user owns nothing; distinguishing that from an unknown user is the
// handler's concern.
func (r *PlaceRepo) ListByCreator(ctx context.Context, userID uint64) ([]*model.Place, error) {
	const q = `SELECT p.id, p.title, p.description, p.address, p.lat, p.lng, p.image, p.creator_id, p.created_at, p.updated_at
	           FROM places p
	           JOIN user_places up ON up.place_id = p.id
	           WHERE up.user_id = ?
	           ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Place, 0)
	for rows.Next() {
		p := new(model.Place)
		if err := scanPlace(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateForUser inserts a new place and appends it to the creator's
// owned set as one atomic unit. Both writes commit together or roll
// back together. On success the place's ID and timestamp fields are
// populated from the database.
func (r *PlaceRepo) CreateForUser(ctx context.Context, p *model.Place) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const qInsert = `INSERT INTO places (title, description, address, lat, lng, image, creator_id)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert,
		p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.Image, p.CreatorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	// Append to the creator's owned set inside the same transaction.
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_places (user_id, place_id) VALUES (?, ?)`,
		p.CreatorID, p.ID); err != nil {
		return err
	}

	// Follow-up SELECT to populate default timestamp fields (created_at, updated_at).
	const qSelect = "SELECT created_at, updated_at FROM places WHERE id = ?"
	if err = tx.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// UpdateContent updates the two mutable fields of a place. Callers are
// expected to have fetched the place and checked ownership first; the
// method itself only persists the new content.
func (r *PlaceRepo) UpdateContent(ctx context.Context, id uint64, title, description string) error {
	const q = `UPDATE places
	           SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, title, description, id)
	return err
}

// DeleteForUser removes a place and pulls it out of the creator's owned
// set as one atomic unit. It returns ErrPlaceNotFound when the place row
// no longer exists (e.g. a concurrent delete won the race).
func (r *PlaceRepo) DeleteForUser(ctx context.Context, placeID, creatorID uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM user_places WHERE user_id = ? AND place_id = ?`,
		creatorID, placeID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, placeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrPlaceNotFound
		return err
	}
	return nil
}
