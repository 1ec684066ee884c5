package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/places-api/internal/model"
)

func placeColumnsForTest() []string {
	return []string{"id", "title", "description", "address", "lat", "lng", "image", "creator_id", "created_at", "updated_at"}
}

func samplePlaceRow(m sqlmock.Sqlmock, id, creator uint64) *sqlmock.Rows {
	now := time.Now().UTC()
	return m.NewRows(placeColumnsForTest()).
		AddRow(id, "Cafe", "Nice spot", "1600 Pennsylvania Ave", 38.8977, -77.0365, "uploads/images/x.png", creator, now, now)
}

func TestGetByIDFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM places WHERE id").
		WithArgs(uint64(7)).
		WillReturnRows(samplePlaceRow(mock, 7, 3))

	p, err := NewPlaceRepo(db).GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.ID)
	assert.Equal(t, uint64(3), p.CreatorID)
	assert.InDelta(t, 38.8977, p.Location.Lat, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM places WHERE id").
		WithArgs(uint64(404)).
		WillReturnRows(mock.NewRows(placeColumnsForTest()))

	_, err = NewPlaceRepo(db).GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForUserCommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO places").
		WithArgs("Cafe", "Nice spot", "1600 Pennsylvania Ave", 38.8977, -77.0365, "uploads/images/x.png", uint64(3)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO user_places").
		WithArgs(uint64(3), uint64(11)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM places").
		WithArgs(uint64(11)).
		WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	p := &model.Place{
		Title:       "Cafe",
		Description: "Nice spot",
		Address:     "1600 Pennsylvania Ave",
		Location:    model.Location{Lat: 38.8977, Lng: -77.0365},
		Image:       "uploads/images/x.png",
		CreatorID:   3,
	}
	require.NoError(t, NewPlaceRepo(db).CreateForUser(context.Background(), p))
	assert.Equal(t, uint64(11), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForUserRollsBackWhenOwnedSetWriteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO places").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO user_places").
		WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	p := &model.Place{Title: "Cafe", Description: "Nice spot", Address: "a", CreatorID: 3}
	err = NewPlaceRepo(db).CreateForUser(context.Background(), p)
	require.Error(t, err)
	// Rollback expected, commit never issued: both writes or neither.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForUserRemovesBothRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_places").
		WithArgs(uint64(3), uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM places").
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewPlaceRepo(db).DeleteForUser(context.Background(), 11, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForUserMissingPlace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_places").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM places").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewPlaceRepo(db).DeleteForUser(context.Background(), 11, 3)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCreatorEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM places p").
		WithArgs(uint64(3)).
		WillReturnRows(mock.NewRows(placeColumnsForTest()))

	out, err := NewPlaceRepo(db).ListByCreator(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}
