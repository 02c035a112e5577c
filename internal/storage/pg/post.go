package pg

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/HatzunoMiku/student-forum2/internal/domain"
	internal_errors "github.com/HatzunoMiku/student-forum2/internal/errors"
)

const foreignKeyViolation = "23503"

func (s *Storage) CreatePost(creationData domain.PostCreationData) (domain.PostId, error) {
	var id domain.PostId
	err := s.db.QueryRow(
		"INSERT INTO posts(content, author_id, thread_id) VALUES($1, $2, $3) RETURNING id",
		creationData.Content, creationData.Author, creationData.Thread,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
			return -1, internal_errors.NotFound("Thread not found")
		}
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

// Posts returns every post in a thread, oldest first.
func (s *Storage) Posts(threadID domain.ThreadId) ([]domain.Post, error) {
	rows, err := s.db.Query(`
        SELECT p.id, p.content, p.author_id, u.username, p.thread_id, p.created_at
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.thread_id = $1
        ORDER BY p.created_at, p.id
    `, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.Content, &p.Author, &p.AuthorName, &p.ThreadId, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}
