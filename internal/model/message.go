package model

// Message represents a row of the `messages` table. Sender and receiver are
// stored as plain identifiers; FilePath/FileType carry an optional image or
// audio attachment.
type Message struct {
	ID        int64  `json:"id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Content   string `json:"content"`
	FilePath  string `json:"file_path"`
	FileType  string `json:"file_type"` // image | audio (empty when no attachment)
	Timestamp string `json:"timestamp"`
}
