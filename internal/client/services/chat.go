package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
)

// MaxChatHistory bounds the turns sent back to the assistant.
const MaxChatHistory = 20

var ErrEmptyMessage = errors.New("message is empty")

// ChatService talks to the AI assistant and keeps the conversation.
type ChatService interface {
	Send(ctx context.Context, message, summaryID string) (string, error)
	History() []models.ChatMessage
	Reset()
}

type chatService struct {
	client api.Client

	mu      sync.Mutex
	history []models.ChatMessage
}

func NewChatService(client api.Client) ChatService {
	return &chatService{client: client}
}

// Send asks the assistant. The exchange is added to the history only when
// the assistant answered.
func (s *chatService) Send(ctx context.Context, message, summaryID string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	req := models.ChatRequest{Message: message, SummaryID: summaryID, History: s.History()}
	reply, err := s.client.Chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	s.mu.Lock()
	s.history = append(s.history,
		models.ChatMessage{Role: "user", Content: message},
		models.ChatMessage{Role: "assistant", Content: reply.Reply},
	)
	if over := len(s.history) - MaxChatHistory; over > 0 {
		s.history = append([]models.ChatMessage(nil), s.history[over:]...)
	}
	s.mu.Unlock()

	return reply.Reply, nil
}

func (s *chatService) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.history...)
}

func (s *chatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
