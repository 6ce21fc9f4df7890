// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kmdb/internal/platform/database/schema"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/postgres"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
	db   postgres.Querier
	inTx bool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, db: pool}
}

func (repository *PostgresRepository) WithinTransaction(context context.Context, fn func(context context.Context, repository Repository) error) error {
	if repository.inTx {
		return fn(context, repository)
	}

	err := postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		return fn(context, &PostgresRepository{pool: repository.pool, db: tx, inTx: true})
	})
	return dberr.Wrap(err, "genre_transaction")
}

func (repository *PostgresRepository) ListGenres(context context.Context) ([]Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	return scanGenres(rows)
}

func (repository *PostgresRepository) GetGenre(context context.Context, id int) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	genre := &Genre{}
	if err := repository.db.QueryRow(context, query, id).Scan(&genre.ID, &genre.Name); err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}
	return genre, nil
}

func (repository *PostgresRepository) SearchGenres(context context.Context, name string) ([]Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s ILIKE $1 ORDER BY %s`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Table,
		schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	rows, err := repository.db.Query(context, query, postgres.ContainsPattern(name))
	if err != nil {
		return nil, dberr.Wrap(err, "search_genres")
	}
	return scanGenres(rows)
}

func (repository *PostgresRepository) ExistsByName(context context.Context, name string) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE lower(%s) = lower($1))`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name,
	)

	err := repository.db.QueryRow(context, query, name).Scan(&exists)
	return exists, dberr.Wrap(err, "genre_exists_by_name")
}

func (repository *PostgresRepository) CreateGenre(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	err := repository.db.QueryRow(context, query, genre.Name).Scan(&genre.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) DeleteGenre(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListMovieIDs(context context.Context, genreID int) ([]int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.Table,
		schema.CatalogMovieGenre.GenreID, schema.CatalogMovieGenre.MovieID,
	)

	rows, err := repository.db.Query(context, query, genreID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genre_movies")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	return ids, dberr.Wrap(err, "list_genre_movies")
}

func (repository *PostgresRepository) DetachFromMovie(context context.Context, movieID, genreID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CatalogMovieGenre.Table, schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.GenreID,
	)

	_, err := repository.db.Exec(context, query, movieID, genreID)
	return dberr.Wrap(err, "detach_genre")
}

func scanGenres(rows pgx.Rows) ([]Genre, error) {
	defer rows.Close()

	var genres []Genre
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}
	return genres, dberr.Wrap(rows.Err(), "scan_genres")
}
