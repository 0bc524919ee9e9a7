package domain

import "time"

// ChatRole - автор реплики в диалоге
type ChatRole string

const (
	ChatUser      ChatRole = "user"
	ChatAssistant ChatRole = "assistant"
)

// ChatTurn - одна реплика диалога
type ChatTurn struct {
	Role    ChatRole  `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// ChatReply - ответ ассистента
type ChatReply struct {
	Response  string
	Timestamp time.Time
}

// ChatHealth - состояние модели
type ChatHealth struct {
	Status    string
	Model     string
	ModelURL  string
	Available bool
	Timestamp time.Time
}
