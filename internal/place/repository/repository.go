package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/migfernandes01/places-share-API/internal/common/db"
	"github.com/migfernandes01/places-share-API/internal/place/domain"
)

var ErrPlaceNotFound = errors.New("place not found")

type Repository interface {
	FindByID(ctx context.Context, id domain.ID) (domain.Place, error)
	FindByCreator(ctx context.Context, creatorID string) ([]domain.Place, error)
	// CreateWithOwner inserts the place and appends its id to the owner's
	// place list as one transaction: either both sides land or neither.
	CreateWithOwner(ctx context.Context, place domain.Place) error
	Update(ctx context.Context, place domain.Place) error
	// DeleteWithOwner removes the place and pulls its id from the owner's
	// place list as one transaction.
	DeleteWithOwner(ctx context.Context, place domain.Place) error
}

type PgRepository struct {
	pool *pgxpool.Pool
	tx   *db.TxManager
}

func NewPgRepository(pool *pgxpool.Pool, tx *db.TxManager) *PgRepository {
	return &PgRepository{pool: pool, tx: tx}
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Place, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, title, description, address, lat, lng, image, creator, created_at
		 FROM places WHERE id = $1`,
		string(id),
	)
	return scanPlace(row)
}

func (r *PgRepository) FindByCreator(ctx context.Context, creatorID string) ([]domain.Place, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, description, address, lat, lng, image, creator, created_at
		 FROM places WHERE creator = $1 ORDER BY created_at`,
		creatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}

	return places, rows.Err()
}

func (r *PgRepository) CreateWithOwner(ctx context.Context, place domain.Place) error {
	return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO places (id, title, description, address, lat, lng, image, creator)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			string(place.ID),
			place.Title,
			place.Description,
			place.Address,
			place.Location.Lat,
			place.Location.Lng,
			place.Image,
			string(place.Creator),
		)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(
			ctx,
			`UPDATE users SET place_ids = array_append(place_ids, $1) WHERE id = $2`,
			string(place.ID),
			string(place.Creator),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errors.New("owner row missing during place create")
		}

		return nil
	})
}

func (r *PgRepository) Update(ctx context.Context, place domain.Place) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE places SET title = $1, description = $2 WHERE id = $3`,
		place.Title,
		place.Description,
		string(place.ID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}
	return nil
}

func (r *PgRepository) DeleteWithOwner(ctx context.Context, place domain.Place) error {
	return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`DELETE FROM places WHERE id = $1`,
			string(place.ID),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrPlaceNotFound
		}

		_, err = tx.Exec(
			ctx,
			`UPDATE users SET place_ids = array_remove(place_ids, $1) WHERE id = $2`,
			string(place.ID),
			string(place.Creator),
		)
		return err
	})
}

func scanPlace(row pgx.Row) (domain.Place, error) {
	var place domain.Place
	err := row.Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Lat,
		&place.Location.Lng,
		&place.Image,
		&place.Creator,
		&place.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, ErrPlaceNotFound
		}
		return domain.Place{}, err
	}
	return place, nil
}
