package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCommentCreateRequiresReport(t *testing.T) {
	svc := NewCommentService(newTestDB(t), nil)

	if _, err := svc.Create(context.Background(), 42, "hello", 1); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("Create on missing report: err = %v, want ErrReportNotFound", err)
	}
}

func TestCommentCreateRejectsEmptyBody(t *testing.T) {
	db := newTestDB(t)
	report, err := NewReportService(db).Create(context.Background(), validInput(), 1)
	if err != nil {
		t.Fatalf("Create report: %v", err)
	}

	svc := NewCommentService(db, nil)
	if _, err := svc.Create(context.Background(), report.ID, "   ", 1); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("Create with blank body: err = %v, want ErrEmptyComment", err)
	}
}

func TestCommentsListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	report, err := NewReportService(db).Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create report: %v", err)
	}

	svc := NewCommentService(db, nil)
	older, err := svc.Create(ctx, report.ID, "first", 2)
	if err != nil {
		t.Fatalf("Create comment: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	newer, err := svc.Create(ctx, report.ID, "second", 3)
	if err != nil {
		t.Fatalf("Create comment: %v", err)
	}

	comments, err := svc.ListByReport(ctx, report.ID)
	if err != nil {
		t.Fatalf("ListByReport: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].ID != newer.ID || comments[1].ID != older.ID {
		t.Errorf("order = [%d %d], want newest first [%d %d]",
			comments[0].ID, comments[1].ID, newer.ID, older.ID)
	}
}

func TestCommentCreatePublishesToHub(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	report, err := NewReportService(db).Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create report: %v", err)
	}

	hub := NewHub()
	sub := hub.Subscribe(report.ID)
	defer sub.Close()

	svc := NewCommentService(db, hub)
	created, err := svc.Create(ctx, report.ID, "live one", 2)
	if err != nil {
		t.Fatalf("Create comment: %v", err)
	}

	select {
	case got := <-sub.C:
		if got.ID != created.ID || got.Body != "live one" {
			t.Errorf("received comment %+v, want id %d", got, created.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no comment delivered to subscriber")
	}
}
