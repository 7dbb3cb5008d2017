package services

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/response"
)

// Chat message content bounds.
const (
	chatContentMin = 1
	chatContentMax = 1000
)

// ChatService handles the public chat feed.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

var validChatTypes = map[string]bool{
	models.ChatTypeText:   true,
	models.ChatTypeImage:  true,
	models.ChatTypeFile:   true,
	models.ChatTypeSystem: true,
}

// ChatPage is a cursor-paginated slice of the feed, oldest first within
// the page. NextCursor is the ID to pass to fetch the next (older) page;
// zero when exhausted.
type ChatPage struct {
	Messages   []models.ChatMessage `json:"messages"`
	NextCursor uint                 `json:"next_cursor"`
	HasMore    bool                 `json:"has_more"`
}

// List returns messages before the cursor (exclusive), newest page first.
// A zero cursor starts from the latest message.
func (s *ChatService) List(limit int, cursor uint) (*ChatPage, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	tx := s.db.Model(&models.ChatMessage{}).Preload("Author")
	if cursor > 0 {
		tx = tx.Where("id < ?", cursor)
	}

	// Fetch one extra row to detect whether an older page exists.
	var messages []models.ChatMessage
	if err := tx.Order("id DESC").Limit(limit + 1).Find(&messages).Error; err != nil {
		return nil, err
	}

	page := &ChatPage{}
	if len(messages) > limit {
		page.HasMore = true
		messages = messages[:limit]
	}
	if len(messages) > 0 {
		page.NextCursor = messages[len(messages)-1].ID
	}
	if !page.HasMore {
		page.NextCursor = 0
	}

	// Reverse into chronological order for rendering.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	page.Messages = messages
	return page, nil
}

// PostRequest carries a new chat message.
type PostRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

// normalizeChatMessage trims the content, defaults the type and checks the
// bounds. Lengths count characters, not bytes.
func normalizeChatMessage(content, msgType string) (string, string, []response.FieldError) {
	var details []response.FieldError

	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < chatContentMin || n > chatContentMax {
		details = append(details, response.FieldError{Field: "content", Message: "must be 1-1000 characters"})
	}

	if msgType == "" {
		msgType = models.ChatTypeText
	}
	if !validChatTypes[msgType] {
		details = append(details, response.FieldError{Field: "type", Message: "must be TEXT, IMAGE, FILE or SYSTEM"})
	}

	return content, msgType, details
}

// Post appends a message to the feed and broadcasts it.
func (s *ChatService) Post(p authz.Principal, req PostRequest) (*models.ChatMessage, error) {
	content, msgType, details := normalizeChatMessage(req.Content, req.Type)
	if len(details) > 0 {
		return nil, response.NewInvalidInput("invalid message", details...)
	}

	msg := models.ChatMessage{
		Content:  content,
		Type:     msgType,
		AuthorID: p.UserID,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	s.db.Preload("Author").First(&msg, msg.ID)

	GetEventHub().Publish(Event{Type: "chat", Payload: msg})
	return &msg, nil
}
