package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/notevault/notevault/internal/authz"
	"github.com/notevault/notevault/internal/config"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/pkg/logger"
	"github.com/notevault/notevault/pkg/response"
)

// InsightService orchestrates AI insight generation and ownership-scoped
// reads. Generation runs through the task queue; the processor lands back
// in Process.
type InsightService struct {
	db    *gorm.DB
	ai    *AIService
	notes *NoteService
}

func NewInsightService(db *gorm.DB, cfg *config.AIConfig) *InsightService {
	return &InsightService{
		db:    db,
		ai:    NewAIService(cfg),
		notes: NewNoteService(db),
	}
}

// List returns the principal's insights, newest first, unread first.
func (s *InsightService) List(p authz.Principal, workspaceID *uint, limit int) ([]models.AIInsight, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	tx := s.db.Where("user_id = ?", p.UserID)
	if workspaceID != nil {
		tx = tx.Where("workspace_id = ?", *workspaceID)
	}

	var insights []models.AIInsight
	err := tx.Order("is_read ASC, created_at DESC").Limit(limit).Find(&insights).Error
	return insights, err
}

// MarkRead flips the only mutable insight field. Owner only; anyone else
// sees a 404.
func (s *InsightService) MarkRead(p authz.Principal, insightID uint) (*models.AIInsight, error) {
	insight, err := s.owned(p, insightID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(insight).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	insight.IsRead = true
	return insight, nil
}

// Delete removes an insight. Owner only.
func (s *InsightService) Delete(p authz.Principal, insightID uint) error {
	insight, err := s.owned(p, insightID)
	if err != nil {
		return err
	}
	return s.db.Delete(insight).Error
}

func (s *InsightService) owned(p authz.Principal, insightID uint) (*models.AIInsight, error) {
	var insight models.AIInsight
	err := s.db.Where("id = ? AND user_id = ?", insightID, p.UserID).First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("insight not found")
		}
		return nil, err
	}
	return &insight, nil
}

// GenerateRequest scopes a generation run.
type GenerateRequest struct {
	WorkspaceID *uint `json:"workspace_id"`
	NoteID      *uint `json:"note_id"`
}

// Generate validates scope access and enqueues the generation job. The
// response returns immediately; results appear in the insight list.
func (s *InsightService) Generate(p authz.Principal, req GenerateRequest) error {
	// Access checks happen up-front so the caller gets the proper denial
	// instead of a silent empty run.
	if req.WorkspaceID != nil {
		if _, err := s.notes.workspaces.authorize(p, authz.WorkspaceView, *req.WorkspaceID); err != nil {
			return err
		}
	}
	if req.NoteID != nil {
		if _, err := s.notes.Get(p, *req.NoteID); err != nil {
			return err
		}
	}

	return GetTaskQueue().Enqueue(&InsightTask{
		UserID:      p.UserID,
		WorkspaceID: req.WorkspaceID,
		NoteID:      req.NoteID,
	})
}

// insightMetadata is stored alongside generated insights.
type insightMetadata struct {
	NoteIDs []uint `json:"note_ids,omitempty"`
	Source  string `json:"source"`
}

// Process is the task-queue processor: it loads the scoped notes, runs
// summaries and pattern analysis, and persists the results.
func (s *InsightService) Process(ctx context.Context, task *InsightTask) error {
	var user models.User
	if err := s.db.First(&user, task.UserID).Error; err != nil {
		return fmt.Errorf("insight task user not found: %w", err)
	}
	role, _ := authz.ParseRole(user.Role)
	p := authz.Principal{UserID: user.ID, Role: role}

	notes, err := s.scopedNotes(p, task)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		logger.Infof("[Insight] No notes in scope for user_id=%d, nothing to generate", task.UserID)
		return nil
	}

	created := 0
	for i := range notes {
		note := &notes[i]
		summary, err := s.ai.Summarize(ctx, note)
		if err != nil {
			logger.Errorf("[Insight] Summarize failed for note_id=%d: %v", note.ID, err)
			continue
		}
		meta, _ := json.Marshal(insightMetadata{NoteIDs: []uint{note.ID}, Source: s.ai.config.Provider})
		insight := models.AIInsight{
			Type:        models.InsightSummary,
			Title:       "Summary: " + note.Title,
			Content:     summary.Summary,
			Confidence:  summary.Confidence,
			Metadata:    string(meta),
			UserID:      task.UserID,
			WorkspaceID: note.WorkspaceID,
			NoteID:      &note.ID,
		}
		if err := s.db.Create(&insight).Error; err != nil {
			logger.Errorf("[Insight] Failed to store summary for note_id=%d: %v", note.ID, err)
			continue
		}
		created++
	}

	// Pattern analysis only makes sense across more than one note.
	if task.NoteID == nil && len(notes) > 1 {
		for _, pattern := range s.ai.FindPatterns(notes) {
			meta, _ := json.Marshal(insightMetadata{NoteIDs: pattern.NoteIDs, Source: "local"})
			insight := models.AIInsight{
				Type:        pattern.Type,
				Title:       pattern.Title,
				Content:     pattern.Description,
				Confidence:  pattern.Confidence,
				Metadata:    string(meta),
				UserID:      task.UserID,
				WorkspaceID: task.WorkspaceID,
			}
			if err := s.db.Create(&insight).Error; err != nil {
				logger.Errorf("[Insight] Failed to store pattern insight: %v", err)
				continue
			}
			created++
		}
	}

	if created > 0 {
		RecordActivity(models.ActivityInsightsGenerated,
			fmt.Sprintf("%d insights generated", created), "", task.UserID, task.WorkspaceID, nil)
		GetEventHub().Publish(Event{Type: "insight", Payload: map[string]interface{}{
			"user_id": task.UserID,
			"count":   created,
		}})
	}

	logger.Infof("[Insight] Generation complete: user_id=%d created=%d", task.UserID, created)
	return nil
}

func (s *InsightService) scopedNotes(p authz.Principal, task *InsightTask) ([]models.Note, error) {
	if task.NoteID != nil {
		note, err := s.notes.Get(p, *task.NoteID)
		if err != nil {
			return nil, err
		}
		return []models.Note{*note}, nil
	}
	return s.notes.List(p, NoteQuery{WorkspaceID: task.WorkspaceID})
}
