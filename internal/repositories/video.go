package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// VideoRepository implements models.Repository[*models.PersistedVideo] for
// video metadata caching.
//
// Handles video CRUD operations with soft delete support and lookups by the
// external video id.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video record with generated ID and sequence
func (r *VideoRepository) Create(video *models.PersistedVideo) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	video.SetID(id)

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (id, sequence, video_id, title, channel, thumbnail_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		video.VideoID(),
		video.Title(),
		video.Channel(),
		video.ThumbnailURL(),
		video.CreatedAt(),
		video.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a video by ID, excluding soft-deleted records
func (r *VideoRepository) Get(id string) (*models.PersistedVideo, error) {
	query := `
		SELECT id, sequence, video_id, title, channel, thumbnail_url, created_at, updated_at, deleted_at
		FROM videos
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByVideoID retrieves a video by its external video id
func (r *VideoRepository) GetByVideoID(videoID string) (*models.PersistedVideo, error) {
	query := `
		SELECT id, sequence, video_id, title, channel, thumbnail_url, created_at, updated_at, deleted_at
		FROM videos
		WHERE video_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, videoID))
}

// Update modifies an existing video record
func (r *VideoRepository) Update(video *models.PersistedVideo) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	video.SetUpdatedAt(now)

	query := `
		UPDATE videos
		SET title = ?, channel = ?, thumbnail_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		video.Title(),
		video.Channel(),
		video.ThumbnailURL(),
		now,
		video.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found or already deleted: %s", video.ID())
	}

	return nil
}

// Delete soft-deletes a video by ID
func (r *VideoRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE videos
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all videos matching the given criteria, excluding soft-deleted records
func (r *VideoRepository) List(criteria map[string]any) ([]*models.PersistedVideo, error) {
	query := `
		SELECT id, sequence, video_id, title, channel, thumbnail_url, created_at, updated_at, deleted_at
		FROM videos
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if channel, ok := criteria["channel"].(string); ok && channel != "" {
		query += " AND channel = ?"
		args = append(args, channel)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.PersistedVideo
	for rows.Next() {
		video, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// scanOne scans a single row into a [models.PersistedVideo]
func (r *VideoRepository) scanOne(row *sql.Row) (*models.PersistedVideo, error) {
	var (
		id           string
		sequence     int
		videoID      string
		title        string
		channel      string
		thumbnailURL string
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &videoID, &title, &channel, &thumbnailURL, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("video not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	return buildPersistedVideo(id, sequence, videoID, title, channel, thumbnailURL, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedVideo]
func (r *VideoRepository) scanRow(rows *sql.Rows) (*models.PersistedVideo, error) {
	var (
		id           string
		sequence     int
		videoID      string
		title        string
		channel      string
		thumbnailURL string
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &videoID, &title, &channel, &thumbnailURL, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	return buildPersistedVideo(id, sequence, videoID, title, channel, thumbnailURL, updatedAt, deletedAt), nil
}

func buildPersistedVideo(id string, sequence int, videoID, title, channel, thumbnailURL string, updatedAt time.Time, deletedAt sql.NullTime) *models.PersistedVideo {
	dto := models.Video{
		VideoID:      videoID,
		Title:        title,
		Channel:      channel,
		ThumbnailURL: thumbnailURL,
	}

	video := models.NewPersistedVideo(sequence, dto)
	video.SetID(id)
	video.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		video.SetDeletedAt(&deletedAt.Time)
	}

	return video
}
