package wire

import "time"

// ChatRequestDTO - тело POST /chat/send и /chat/stream
type ChatRequestDTO struct {
	Message string `json:"message"`
}

type ChatResponseDTO struct {
	Response  string    `json:"response,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

type ChatHealthDTO struct {
	Status    string    `json:"status"`
	Model     string    `json:"model"`
	ModelURL  string    `json:"modelUrl"`
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatChunkDTO - одна часть потокового ответа
type ChatChunkDTO struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
}
