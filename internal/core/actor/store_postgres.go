// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kmdb/internal/platform/database/schema"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/postgres"
	"github.com/taibuivan/kmdb/pkg/pagination"
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
	return dberr.Wrap(err, "actor_transaction")
}

func selectActors() string {
	return fmt.Sprintf(`SELECT %s FROM %s`, schema.List("", schema.CatalogActor.Columns()...), schema.CatalogActor.Table)
}

func (repository *PostgresRepository) ListActors(context context.Context) ([]Actor, error) {
	query := selectActors() + fmt.Sprintf(` ORDER BY %s`, schema.CatalogActor.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_actors")
	}
	return scanActors(rows)
}

func (repository *PostgresRepository) ListActorsPage(context context.Context, params pagination.Params) ([]Actor, int, error) {
	total, err := repository.CountActors(context)
	if err != nil {
		return nil, 0, err
	}

	query := selectActors() + fmt.Sprintf(` ORDER BY %s LIMIT $1 OFFSET $2`, schema.CatalogActor.ID)

	rows, err := repository.db.Query(context, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_actors_page")
	}

	actors, err := scanActors(rows)
	return actors, total, err
}

func (repository *PostgresRepository) CountActors(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogActor.Table)

	err := repository.db.QueryRow(context, query).Scan(&total)
	return total, dberr.Wrap(err, "count_actors")
}

func (repository *PostgresRepository) GetActor(context context.Context, id int) (*Actor, error) {
	query := selectActors() + fmt.Sprintf(` WHERE %s = $1`, schema.CatalogActor.ID)

	actor := &Actor{}
	err := repository.db.QueryRow(context, query, id).Scan(&actor.ID, &actor.Name, &actor.BirthDate)
	if err != nil {
		return nil, dberr.Wrap(err, "get_actor")
	}
	return actor, nil
}

func (repository *PostgresRepository) SearchActors(context context.Context, name string) ([]Actor, error) {
	query := selectActors() + fmt.Sprintf(` WHERE %s ILIKE $1 ORDER BY %s`, schema.CatalogActor.Name, schema.CatalogActor.ID)

	rows, err := repository.db.Query(context, query, postgres.ContainsPattern(name))
	if err != nil {
		return nil, dberr.Wrap(err, "search_actors")
	}
	return scanActors(rows)
}

func (repository *PostgresRepository) ExistsByName(context context.Context, name string) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CatalogActor.Table, schema.CatalogActor.Name)

	err := repository.db.QueryRow(context, query, name).Scan(&exists)
	return exists, dberr.Wrap(err, "actor_exists_by_name")
}

func (repository *PostgresRepository) CreateActor(context context.Context, actor *Actor) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CatalogActor.Table, schema.CatalogActor.Name, schema.CatalogActor.BirthDate, schema.CatalogActor.ID,
	)

	err := repository.db.QueryRow(context, query, actor.Name, actor.BirthDate).Scan(&actor.ID)
	return dberr.Wrap(err, "create_actor")
}

func (repository *PostgresRepository) UpdateActor(context context.Context, actor *Actor) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.CatalogActor.Table, schema.CatalogActor.Name, schema.CatalogActor.BirthDate, schema.CatalogActor.ID,
	)

	cmd, err := repository.db.Exec(context, query, actor.ID, actor.Name, actor.BirthDate)
	if err != nil {
		return dberr.Wrap(err, "update_actor")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteActor(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogActor.Table, schema.CatalogActor.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_actor")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountMovies(context context.Context, actorID int) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.CatalogMovieActor.Table, schema.CatalogMovieActor.ActorID)

	err := repository.db.QueryRow(context, query, actorID).Scan(&total)
	return total, dberr.Wrap(err, "count_actor_movies")
}

func (repository *PostgresRepository) ListMovies(context context.Context, actorID int) ([]MovieRef, error) {
	query := fmt.Sprintf(`
		SELECT m.%s, m.%s
		FROM %s m
		JOIN %s j ON j.%s = m.%s
		WHERE j.%s = $1
		ORDER BY m.%s
	`,
		schema.CatalogMovie.ID, schema.CatalogMovie.Title,
		schema.CatalogMovie.Table,
		schema.CatalogMovieActor.Table, schema.CatalogMovieActor.MovieID, schema.CatalogMovie.ID,
		schema.CatalogMovieActor.ActorID,
		schema.CatalogMovie.ID,
	)

	rows, err := repository.db.Query(context, query, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_actor_movies")
	}
	defer rows.Close()

	var movies []MovieRef
	for rows.Next() {
		var movie MovieRef
		if err := rows.Scan(&movie.ID, &movie.Title); err != nil {
			return nil, dberr.Wrap(err, "scan_actor_movie")
		}
		movies = append(movies, movie)
	}
	return movies, dberr.Wrap(rows.Err(), "list_actor_movies")
}

func scanActors(rows pgx.Rows) ([]Actor, error) {
	defer rows.Close()

	var actors []Actor
	for rows.Next() {
		var actor Actor
		if err := rows.Scan(&actor.ID, &actor.Name, &actor.BirthDate); err != nil {
			return nil, dberr.Wrap(err, "scan_actor")
		}
		actors = append(actors, actor)
	}
	return actors, dberr.Wrap(rows.Err(), "scan_actors")
}
