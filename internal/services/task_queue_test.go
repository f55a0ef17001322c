package services

import (
	"context"
	"testing"
	"time"
)

func TestTaskTypeImport_Constant(t *testing.T) {
	if TaskTypeImport != "import:process" {
		t.Errorf("TaskTypeImport = %q, expected %q", TaskTypeImport, "import:process")
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
	task := &ImportTask{JobID: "job-1", Input: "Name,Email\n"}

	if err := queue.Enqueue(task); err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_EnqueueRunsProcessor(t *testing.T) {
	queue := NewSyncQueue()

	done := make(chan *ImportTask, 1)
	queue.SetProcessor(func(ctx context.Context, task *ImportTask) error {
		done <- task
		return nil
	})

	if err := queue.Enqueue(&ImportTask{JobID: "job-7", Input: "data"}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case got := <-done:
		if got.JobID != "job-7" {
			t.Errorf("processor received JobID %q, expected job-7", got.JobID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor was never invoked")
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
