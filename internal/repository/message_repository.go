package repository

import (
	"context"
	"database/sql"

	"boutique/internal/model"
)

type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// List returns every message, oldest first.
func (r *MessageRepo) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, sender, receiver, COALESCE(content,''),
               COALESCE(file_path,''), COALESCE(file_type,''), COALESCE(timestamp,'')
          FROM messages ORDER BY timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Content, &m.FilePath, &m.FileType, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Create inserts a message and returns its id. FilePath/FileType are stored
// as NULL when empty so the file_type CHECK constraint stays satisfied for
// plain text messages.
func (r *MessageRepo) Create(ctx context.Context, m model.Message) (int64, error) {
	var filePath, fileType any
	if m.FilePath != "" {
		filePath = m.FilePath
	}
	if m.FileType != "" {
		fileType = m.FileType
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (sender, receiver, content, file_path, file_type) VALUES (?, ?, ?, ?, ?)",
		m.Sender, m.Receiver, m.Content, filePath, fileType)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
