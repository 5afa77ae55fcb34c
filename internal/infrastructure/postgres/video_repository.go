package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/domain/repository"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for
// testability and for sharing repositories between pool and transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Compile-time verification that VideoRepository implements
// repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)

const videoColumns = `
	id, title, description, year_launched, opened, published, duration,
	rating, created_at, thumb_path, thumb_half_path, banner_path,
	media_path, media_encoded_path, media_status,
	trailer_path, trailer_encoded_path, trailer_status
`

// Insert persists a new video with its relation sets.
func (r *VideoRepository) Insert(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query, r.rowValues(video)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return r.replaceRelations(ctx, video)
}

// GetByID retrieves a video and its relation sets.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	if err := r.loadRelations(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

// Update persists scalar fields, media slots and relation sets.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const query = `
		UPDATE videos
		SET title = $2, description = $3, year_launched = $4, opened = $5,
		    published = $6, duration = $7, rating = $8,
		    thumb_path = $9, thumb_half_path = $10, banner_path = $11,
		    media_path = $12, media_encoded_path = $13, media_status = $14,
		    trailer_path = $15, trailer_encoded_path = $16, trailer_status = $17
		WHERE id = $1
	`

	values := r.rowValues(video)
	// rowValues puts created_at at index 8; updates never touch it.
	args := append(values[:8:8], values[9:]...)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return r.replaceRelations(ctx, video)
}

// Delete removes the video and its relation rows.
func (r *VideoRepository) Delete(ctx context.Context, video *model.Video) error {
	for _, table := range []string{"video_categories", "video_genres", "video_cast_members"} {
		if _, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE video_id = $1", table), video.ID); err != nil {
			return fmt.Errorf("failed to delete video relations: %w", err)
		}
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM videos WHERE id = $1", video.ID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// Search returns one page of videos matching the query. Relation sets are
// not loaded for list projections.
func (r *VideoRepository) Search(ctx context.Context, query repository.SearchQuery) (repository.SearchResult[*model.Video], error) {
	query = query.Normalize()
	result := repository.SearchResult[*model.Video]{
		CurrentPage: query.Page,
		PerPage:     query.PerPage,
	}

	where := ""
	args := []any{}
	if query.Term != "" {
		where = "WHERE title ILIKE $1"
		args = append(args, "%"+query.Term+"%")
	}

	countSQL := "SELECT COUNT(*) FROM videos " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count videos: %w", err)
	}

	orderBy := sortClause(query, map[string]string{
		"title":         "title",
		"year_launched": "year_launched",
		"created_at":    "created_at",
	}, "title")

	pageSQL := fmt.Sprintf(
		"SELECT %s FROM videos %s ORDER BY %s LIMIT $%d OFFSET $%d",
		videoColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, query.PerPage, query.Offset())

	rows, err := r.db.Query(ctx, pageSQL, args...)
	if err != nil {
		return result, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan video: %w", err)
		}
		result.Items = append(result.Items, video)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("error iterating videos: %w", err)
	}

	return result, nil
}

// rowValues returns the column values in videoColumns order.
func (r *VideoRepository) rowValues(video *model.Video) []any {
	var thumb, thumbHalf, banner *string
	if video.Thumb != nil {
		thumb = &video.Thumb.Path
	}
	if video.ThumbHalf != nil {
		thumbHalf = &video.ThumbHalf.Path
	}
	if video.Banner != nil {
		banner = &video.Banner.Path
	}

	var mediaPath, mediaEncoded, mediaStatus *string
	if video.Media != nil {
		mediaPath = &video.Media.FilePath
		mediaEncoded = nullString(video.Media.EncodedPath)
		s := video.Media.Status.String()
		mediaStatus = &s
	}

	var trailerPath, trailerEncoded, trailerStatus *string
	if video.Trailer != nil {
		trailerPath = &video.Trailer.FilePath
		trailerEncoded = nullString(video.Trailer.EncodedPath)
		s := video.Trailer.Status.String()
		trailerStatus = &s
	}

	return []any{
		video.ID,
		video.Title,
		video.Description,
		video.YearLaunched,
		video.Opened,
		video.Published,
		video.Duration,
		video.Rating.String(),
		video.CreatedAt,
		thumb,
		thumbHalf,
		banner,
		mediaPath,
		mediaEncoded,
		mediaStatus,
		trailerPath,
		trailerEncoded,
		trailerStatus,
	}
}

// replaceRelations rewrites the junction rows to match the aggregate's
// in-memory relation sets.
func (r *VideoRepository) replaceRelations(ctx context.Context, video *model.Video) error {
	relations := []struct {
		table  string
		column string
		ids    []uuid.UUID
	}{
		{"video_categories", "category_id", video.CategoryIDs()},
		{"video_genres", "genre_id", video.GenreIDs()},
		{"video_cast_members", "cast_member_id", video.CastMemberIDs()},
	}

	for _, rel := range relations {
		if _, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE video_id = $1", rel.table), video.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", rel.table, err)
		}
		for _, id := range rel.ids {
			insertSQL := fmt.Sprintf("INSERT INTO %s (video_id, %s) VALUES ($1, $2)", rel.table, rel.column)
			if _, err := r.db.Exec(ctx, insertSQL, video.ID, id); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", rel.table, err)
			}
		}
	}

	return nil
}

// loadRelations fills the aggregate's relation sets from the junction
// tables.
func (r *VideoRepository) loadRelations(ctx context.Context, video *model.Video) error {
	loaders := []struct {
		sql string
		add func(uuid.UUID)
	}{
		{"SELECT category_id FROM video_categories WHERE video_id = $1", video.AddCategoryID},
		{"SELECT genre_id FROM video_genres WHERE video_id = $1", video.AddGenreID},
		{"SELECT cast_member_id FROM video_cast_members WHERE video_id = $1", video.AddCastMemberID},
	}

	for _, loader := range loaders {
		ids, err := queryIDs(ctx, r.db, loader.sql, video.ID)
		if err != nil {
			return fmt.Errorf("failed to load video relations: %w", err)
		}
		for _, id := range ids {
			loader.add(id)
		}
	}

	return nil
}

// scanVideo scans one row (pgx.Row or pgx.Rows) into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video          model.Video
		rating         string
		thumb          *string
		thumbHalf      *string
		banner         *string
		mediaPath      *string
		mediaEncoded   *string
		mediaStatus    *string
		trailerPath    *string
		trailerEncoded *string
		trailerStatus  *string
	)

	err := row.Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.YearLaunched,
		&video.Opened,
		&video.Published,
		&video.Duration,
		&rating,
		&video.CreatedAt,
		&thumb,
		&thumbHalf,
		&banner,
		&mediaPath,
		&mediaEncoded,
		&mediaStatus,
		&trailerPath,
		&trailerEncoded,
		&trailerStatus,
	)
	if err != nil {
		return nil, err
	}

	video.Rating = model.Rating(rating)
	if thumb != nil {
		video.Thumb = &model.ImageMedia{Path: *thumb}
	}
	if thumbHalf != nil {
		video.ThumbHalf = &model.ImageMedia{Path: *thumbHalf}
	}
	if banner != nil {
		video.Banner = &model.ImageMedia{Path: *banner}
	}
	if mediaPath != nil {
		video.Media = &model.Media{
			FilePath: *mediaPath,
			Status:   model.MediaStatus(deref(mediaStatus)),
		}
		video.Media.EncodedPath = deref(mediaEncoded)
	}
	if trailerPath != nil {
		video.Trailer = &model.Media{
			FilePath: *trailerPath,
			Status:   model.MediaStatus(deref(trailerStatus)),
		}
		video.Trailer.EncodedPath = deref(trailerEncoded)
	}

	return &video, nil
}

// queryIDs runs a single-column uuid query.
func queryIDs(ctx context.Context, db DBTX, sql string, args ...any) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// sortClause builds a safe ORDER BY from the whitelist; unknown sort fields
// fall back to the default column.
func sortClause(query repository.SearchQuery, whitelist map[string]string, defaultColumn string) string {
	column, ok := whitelist[query.Sort]
	if !ok {
		column = defaultColumn
	}
	direction := "ASC"
	if query.Dir == repository.SortDescending {
		direction = "DESC"
	}
	return column + " " + direction
}

// nullString returns nil for empty strings, otherwise a pointer to the
// string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
