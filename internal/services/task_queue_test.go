package services

import (
	"context"
	"testing"
)

func TestTaskTypeInsight_Constant(t *testing.T) {
	if TaskTypeInsight != "insight:generate" {
		t.Errorf("TaskTypeInsight = %q, expected %q", TaskTypeInsight, "insight:generate")
	}
}

func TestInsightTask_Structure(t *testing.T) {
	wsID := uint(5)
	noteID := uint(9)
	task := InsightTask{
		UserID:      1,
		WorkspaceID: &wsID,
		NoteID:      &noteID,
	}

	if task.UserID != 1 {
		t.Errorf("UserID = %d, expected 1", task.UserID)
	}
	if task.WorkspaceID == nil || *task.WorkspaceID != 5 {
		t.Error("WorkspaceID should be 5")
	}
	if task.NoteID == nil || *task.NoteID != 9 {
		t.Error("NoteID should be 9")
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	if err := queue.Close(); err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()

	err := queue.Enqueue(&InsightTask{UserID: 1})
	if err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_SetProcessor(t *testing.T) {
	queue := NewSyncQueue()

	queue.SetProcessor(func(ctx context.Context, task *InsightTask) error {
		return nil
	})

	if queue.processor == nil {
		t.Error("processor should be set")
	}
}

func TestSyncQueue_EnqueueRunsProcessor(t *testing.T) {
	queue := NewSyncQueue()

	done := make(chan *InsightTask, 1)
	queue.SetProcessor(func(ctx context.Context, task *InsightTask) error {
		done <- task
		return nil
	})

	if err := queue.Enqueue(&InsightTask{UserID: 7}); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}

	task := <-done
	if task.UserID != 7 {
		t.Errorf("processor received UserID = %d, expected 7", task.UserID)
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
