package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
)

func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := s.db.QueryRow(
		"INSERT INTO threads(title, author_id) VALUES($1, $2) RETURNING id",
		creationData.Title, creationData.Author,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert thread: %w", err)
	}
	return id, nil
}

// Threads returns every thread, newest first, with author name and
// reply count joined in. Full listing is intentional; there is no
// pagination in scope.
func (s *Storage) Threads() ([]domain.ThreadSummary, error) {
	rows, err := s.db.Query(`
        SELECT t.id, t.title, u.username, t.created_at, COUNT(p.id)
        FROM threads t
        JOIN users u ON u.id = t.author_id
        LEFT JOIN posts p ON p.thread_id = t.id
        GROUP BY t.id, t.title, u.username, t.created_at
        ORDER BY t.created_at DESC, t.id DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.ThreadSummary
	for rows.Next() {
		var t domain.ThreadSummary
		if err := rows.Scan(&t.Id, &t.Title, &t.AuthorName, &t.CreatedAt, &t.NumPosts); err != nil {
			return nil, fmt.Errorf("failed to scan thread row: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

func (s *Storage) Thread(id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRow(`
        SELECT t.id, t.title, t.created_at, u.id, u.username
        FROM threads t
        JOIN users u ON u.id = t.author_id
        WHERE t.id = $1
    `, id).Scan(&thread.Id, &thread.Title, &thread.CreatedAt, &thread.Author.Id, &thread.Author.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}
