package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tubenotes/internal/segment"
	"tubenotes/internal/subtitle"
)

// SaveSession replaces any stored data for the session's video with the
// supplied state. The write is transactional: re-processing a video either
// fully replaces the previous session or leaves it untouched.
func (s *Store) SaveSession(ctx context.Context, session Session) error {
	if session.Video.VideoID == "" {
		return errors.New("save session: video id required")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	created := timestamp
	if existing, err := s.GetVideo(ctx, session.Video.VideoID); err == nil && existing != nil {
		created = existing.CreatedAt.Format(time.RFC3339Nano)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Cascades clear cues, blocks, and chunks.
	if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE video_id = ?`, session.Video.VideoID); err != nil {
		return fmt.Errorf("clear previous session: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO videos (
            video_id, title, author, url, thumbnail, language,
            has_chapters, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.Video.VideoID,
		session.Video.Title,
		session.Video.Author,
		nullableString(session.Video.URL),
		nullableString(session.Video.Thumbnail),
		nullableString(session.Video.Language),
		boolToInt(session.Video.HasChapters),
		created,
		timestamp,
	); err != nil {
		return fmt.Errorf("insert video: %w", err)
	}

	for i, cue := range session.Cues {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO cues (video_id, seq, start_time, duration, text) VALUES (?, ?, ?, ?, ?)`,
			session.Video.VideoID, i, cue.Start, cue.Duration, cue.Text,
		); err != nil {
			return fmt.Errorf("insert cue %d: %w", i, err)
		}
	}

	for i, block := range session.Blocks {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO blocks (video_id, seq, start_time, end_time, title, is_chapter) VALUES (?, ?, ?, ?, ?, ?)`,
			session.Video.VideoID, i, block.StartTime, block.EndTime, block.Title, boolToInt(block.FromChapter),
		); err != nil {
			return fmt.Errorf("insert block %d: %w", i, err)
		}
	}

	for i, chunk := range session.Chunks {
		id := chunk.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO chunks (id, video_id, chunk_index, text, start_time, embedding) VALUES (?, ?, ?, ?, ?, ?)`,
			id, session.Video.VideoID, chunk.Index, chunk.Text, chunk.StartTime, encodeVector(chunk.Embedding),
		); err != nil {
			return fmt.Errorf("insert chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// GetVideo fetches stored metadata for a video, or nil when unknown.
func (s *Store) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT video_id, title, author, url, thumbnail, language, has_chapters, created_at, updated_at
         FROM videos WHERE video_id = ?`,
		videoID,
	)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// LoadSession restores a full session for a video, or nil when unknown.
// Damaged cue or block rows degrade to a session with only video metadata
// so the caller can offer re-processing.
func (s *Store) LoadSession(ctx context.Context, videoID string) (*Session, error) {
	video, err := s.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, nil
	}

	session := &Session{Video: *video}
	cues, cueErr := s.loadCues(ctx, videoID)
	blocks, blockErr := s.loadBlocks(ctx, videoID)
	if cueErr != nil || blockErr != nil {
		return session, nil
	}
	session.Cues = cues
	session.Blocks = blocks

	chunks, err := s.loadChunks(ctx, videoID)
	if err != nil {
		return session, nil
	}
	session.Chunks = chunks
	return session, nil
}

func (s *Store) loadCues(ctx context.Context, videoID string) ([]subtitle.Cue, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT start_time, duration, text FROM cues WHERE video_id = ? ORDER BY seq`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cues: %w", err)
	}
	defer rows.Close()

	var cues []subtitle.Cue
	for rows.Next() {
		var cue subtitle.Cue
		if err := rows.Scan(&cue.Start, &cue.Duration, &cue.Text); err != nil {
			return nil, fmt.Errorf("scan cue: %w", err)
		}
		cues = append(cues, cue)
	}
	return cues, rows.Err()
}

func (s *Store) loadBlocks(ctx context.Context, videoID string) ([]segment.BlockMeta, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT start_time, end_time, title, is_chapter FROM blocks WHERE video_id = ? ORDER BY seq`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer rows.Close()

	var blocks []segment.BlockMeta
	for rows.Next() {
		var meta segment.BlockMeta
		var isChapter int
		if err := rows.Scan(&meta.StartTime, &meta.EndTime, &meta.Title, &isChapter); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		meta.FromChapter = isChapter != 0
		blocks = append(blocks, meta)
	}
	return blocks, rows.Err()
}

func (s *Store) loadChunks(ctx context.Context, videoID string) ([]Chunk, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, chunk_index, text, start_time, embedding FROM chunks WHERE video_id = ? ORDER BY chunk_index`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var chunk Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Index, &chunk.Text, &chunk.StartTime, &blob); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		vector, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decode chunk embedding: %w", err)
		}
		chunk.Embedding = vector
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// ListSessions returns stored videos, most recently processed first.
func (s *Store) ListSessions(ctx context.Context) ([]Video, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT video_id, title, author, url, thumbnail, language, has_chapters, created_at, updated_at
         FROM videos ORDER BY updated_at DESC, video_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *video)
	}
	return videos, rows.Err()
}

// Remove deletes a stored session.
func (s *Store) Remove(ctx context.Context, videoID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		video       Video
		url         sql.NullString
		thumbnail   sql.NullString
		language    sql.NullString
		hasChapters sql.NullInt64
		createdRaw  string
		updatedRaw  string
	)
	if err := scanner.Scan(
		&video.VideoID,
		&video.Title,
		&video.Author,
		&url,
		&thumbnail,
		&language,
		&hasChapters,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	video.URL = url.String
	video.Thumbnail = thumbnail.String
	video.Language = language.String
	video.HasChapters = hasChapters.Valid && hasChapters.Int64 != 0
	if created, err := parseTimeString(createdRaw); err == nil {
		video.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		video.UpdatedAt = updated
	}
	return &video, nil
}
