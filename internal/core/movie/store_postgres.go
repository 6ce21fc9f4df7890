// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kmdb/internal/core/actor"
	"github.com/taibuivan/kmdb/internal/core/genre"
	"github.com/taibuivan/kmdb/internal/platform/database/schema"
	"github.com/taibuivan/kmdb/internal/platform/dberr"
	"github.com/taibuivan/kmdb/internal/platform/postgres"
	"github.com/taibuivan/kmdb/pkg/pagination"
	"github.com/taibuivan/kmdb/pkg/slice"
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
	return dberr.Wrap(err, "movie_transaction")
}

// # Reads

func selectMovies() string {
	return fmt.Sprintf(`SELECT %s FROM %s`, schema.List("", schema.CatalogMovie.Columns()...), schema.CatalogMovie.Table)
}

// inJoin renders "id IN (SELECT movie_id FROM <join> WHERE <column> = $n)".
func inJoin(table, movieColumn, otherColumn string, placeholder int) string {
	return fmt.Sprintf(`%s IN (SELECT %s FROM %s WHERE %s = $%d)`,
		schema.CatalogMovie.ID, movieColumn, table, otherColumn, placeholder,
	)
}

func actorFilter(placeholder int) string {
	return inJoin(schema.CatalogMovieActor.Table, schema.CatalogMovieActor.MovieID, schema.CatalogMovieActor.ActorID, placeholder)
}

func genreFilter(placeholder int) string {
	return inJoin(schema.CatalogMovieGenre.Table, schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.GenreID, placeholder)
}

func (repository *PostgresRepository) ListMovies(context context.Context, params pagination.Params) ([]Movie, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogMovie.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_movies")
	}

	query := selectMovies() + fmt.Sprintf(` ORDER BY %s LIMIT $1 OFFSET $2`, schema.CatalogMovie.ID)
	movies, err := repository.queryMovies(context, "list_movies", query, params.Limit(), params.Offset())
	return movies, total, err
}

func (repository *PostgresRepository) GetMovie(context context.Context, id int) (*Movie, error) {
	query := selectMovies() + fmt.Sprintf(` WHERE %s = $1`, schema.CatalogMovie.ID)

	movies, err := repository.queryMovies(context, "get_movie", query, id)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, dberr.ErrNotFound
	}
	return &movies[0], nil
}

func (repository *PostgresRepository) FindByReleaseYear(context context.Context, year int) ([]Movie, error) {
	query := selectMovies() + fmt.Sprintf(` WHERE %s = $1 ORDER BY %s`, schema.CatalogMovie.ReleaseYear, schema.CatalogMovie.ID)
	return repository.queryMovies(context, "find_movies_by_year", query, year)
}

func (repository *PostgresRepository) FindByActor(context context.Context, actorID int) ([]Movie, error) {
	query := selectMovies() + fmt.Sprintf(` WHERE %s ORDER BY %s`, actorFilter(1), schema.CatalogMovie.ID)
	return repository.queryMovies(context, "find_movies_by_actor", query, actorID)
}

func (repository *PostgresRepository) FindByGenre(context context.Context, genreID int) ([]Movie, error) {
	query := selectMovies() + fmt.Sprintf(` WHERE %s ORDER BY %s`, genreFilter(1), schema.CatalogMovie.ID)
	return repository.queryMovies(context, "find_movies_by_genre", query, genreID)
}

func (repository *PostgresRepository) FindByActorAndGenre(context context.Context, actorID, genreID int) ([]Movie, error) {
	query := selectMovies() + fmt.Sprintf(` WHERE %s AND %s ORDER BY %s`, actorFilter(1), genreFilter(2), schema.CatalogMovie.ID)
	return repository.queryMovies(context, "find_movies_by_actor_and_genre", query, actorID, genreID)
}

func (repository *PostgresRepository) SearchByTitle(context context.Context, title string) ([]Movie, error) {
	query := selectMovies() + fmt.Sprintf(` WHERE %s ILIKE $1 ORDER BY %s`, schema.CatalogMovie.Title, schema.CatalogMovie.ID)
	return repository.queryMovies(context, "search_movies", query, postgres.ContainsPattern(title))
}

func (repository *PostgresRepository) GetActor(context context.Context, id int) (*actor.Actor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.List("", schema.CatalogActor.Columns()...), schema.CatalogActor.Table, schema.CatalogActor.ID,
	)

	found := &actor.Actor{}
	err := repository.db.QueryRow(context, query, id).Scan(&found.ID, &found.Name, &found.BirthDate)
	if err != nil {
		return nil, dberr.Wrap(err, "movie_get_actor")
	}
	return found, nil
}

func (repository *PostgresRepository) GetGenre(context context.Context, id int) (*genre.Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	found := &genre.Genre{}
	if err := repository.db.QueryRow(context, query, id).Scan(&found.ID, &found.Name); err != nil {
		return nil, dberr.Wrap(err, "movie_get_genre")
	}
	return found, nil
}

// queryMovies scans movie rows and loads their actor and genre sets.
func (repository *PostgresRepository) queryMovies(context context.Context, action, query string, args ...any) ([]Movie, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	movies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Movie, error) {
		var movie Movie
		var rating int
		err := row.Scan(&movie.ID, &movie.Title, &movie.ReleaseYear, &movie.Duration, &rating)
		movie.Rating = Stars(rating)
		movie.Actors = []actor.Actor{}
		movie.Genres = []genre.Genre{}
		return movie, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	if err := repository.hydrate(context, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// hydrate fills the association sets of movies with two batched queries.
func (repository *PostgresRepository) hydrate(context context.Context, movies []Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]int, len(movies))
	index := make(map[int]*Movie, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
		index[movies[i].ID] = &movies[i]
	}

	actorQuery := fmt.Sprintf(`
		SELECT j.%s, %s
		FROM %s j
		JOIN %s a ON a.%s = j.%s
		WHERE j.%s = ANY($1)
		ORDER BY a.%s
	`,
		schema.CatalogMovieActor.MovieID, schema.List("a", schema.CatalogActor.Columns()...),
		schema.CatalogMovieActor.Table,
		schema.CatalogActor.Table, schema.CatalogActor.ID, schema.CatalogMovieActor.ActorID,
		schema.CatalogMovieActor.MovieID,
		schema.CatalogActor.ID,
	)

	rows, err := repository.db.Query(context, actorQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_movie_actors")
	}
	var movieID int
	var member actor.Actor
	_, err = pgx.ForEachRow(rows, []any{&movieID, &member.ID, &member.Name, &member.BirthDate}, func() error {
		target := index[movieID]
		target.Actors = append(target.Actors, member)
		member.BirthDate = nil
		return nil
	})
	if err != nil {
		return dberr.Wrap(err, "load_movie_actors")
	}

	genreQuery := fmt.Sprintf(`
		SELECT j.%s, g.%s, g.%s
		FROM %s j
		JOIN %s g ON g.%s = j.%s
		WHERE j.%s = ANY($1)
		ORDER BY g.%s
	`,
		schema.CatalogMovieGenre.MovieID, schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogMovieGenre.Table,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogMovieGenre.GenreID,
		schema.CatalogMovieGenre.MovieID,
		schema.CatalogGenre.ID,
	)

	rows, err = repository.db.Query(context, genreQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "load_movie_genres")
	}
	var category genre.Genre
	_, err = pgx.ForEachRow(rows, []any{&movieID, &category.ID, &category.Name}, func() error {
		target := index[movieID]
		target.Genres = append(target.Genres, category)
		return nil
	})
	return dberr.Wrap(err, "load_movie_genres")
}

// # Writes

func (repository *PostgresRepository) CreateMovie(context context.Context, movie *Movie) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.CatalogMovie.Table,
		schema.CatalogMovie.Title, schema.CatalogMovie.ReleaseYear, schema.CatalogMovie.Duration, schema.CatalogMovie.StarRating,
		schema.CatalogMovie.ID,
	)

	err := repository.db.QueryRow(context, query, movie.Title, movie.ReleaseYear, movie.Duration, int(movie.Rating)).Scan(&movie.ID)
	if err != nil {
		return dberr.Wrap(err, "create_movie")
	}

	actorIDs := slice.Map(movie.Actors, func(member actor.Actor) int { return member.ID })
	if err := repository.link(context, "link_movie_actors", schema.CatalogMovieActor.Table,
		schema.CatalogMovieActor.MovieID, schema.CatalogMovieActor.ActorID, movie.ID, actorIDs); err != nil {
		return err
	}

	genreIDs := slice.Map(movie.Genres, func(category genre.Genre) int { return category.ID })
	return repository.link(context, "link_movie_genres", schema.CatalogMovieGenre.Table,
		schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.GenreID, movie.ID, genreIDs)
}

// link inserts one join row per id, ignoring pairs that already exist.
func (repository *PostgresRepository) link(context context.Context, action, table, movieColumn, otherColumn string, movieID int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		table, movieColumn, otherColumn,
	)

	_, err := repository.db.Exec(context, query, movieID, ids)
	return dberr.Wrap(err, action)
}

// unlink deletes one join row and reports [dberr.ErrNotFound] when it was absent.
func (repository *PostgresRepository) unlink(context context.Context, action, table, movieColumn, otherColumn string, movieID, otherID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table, movieColumn, otherColumn)

	cmd, err := repository.db.Exec(context, query, movieID, otherID)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) AddActor(context context.Context, movieID, actorID int) error {
	return repository.link(context, "add_movie_actor", schema.CatalogMovieActor.Table,
		schema.CatalogMovieActor.MovieID, schema.CatalogMovieActor.ActorID, movieID, []int{actorID})
}

func (repository *PostgresRepository) AddGenre(context context.Context, movieID, genreID int) error {
	return repository.link(context, "add_movie_genre", schema.CatalogMovieGenre.Table,
		schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.GenreID, movieID, []int{genreID})
}

func (repository *PostgresRepository) RemoveActor(context context.Context, movieID, actorID int) error {
	return repository.unlink(context, "remove_movie_actor", schema.CatalogMovieActor.Table,
		schema.CatalogMovieActor.MovieID, schema.CatalogMovieActor.ActorID, movieID, actorID)
}

func (repository *PostgresRepository) RemoveGenre(context context.Context, movieID, genreID int) error {
	return repository.unlink(context, "remove_movie_genre", schema.CatalogMovieGenre.Table,
		schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.GenreID, movieID, genreID)
}

func (repository *PostgresRepository) SetRating(context context.Context, movieID int, stars Stars) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CatalogMovie.Table, schema.CatalogMovie.StarRating, schema.CatalogMovie.ID,
	)

	cmd, err := repository.db.Exec(context, query, movieID, int(stars))
	if err != nil {
		return dberr.Wrap(err, "rate_movie")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteMovie(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogMovie.Table, schema.CatalogMovie.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_movie")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
