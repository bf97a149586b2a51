package repository

import (
	"testing"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/dbtest"
	"sharkpay/api/internal/infra/postgres"
)

func TestCreateEvent(t *testing.T) {
	r := InitEventsRepo()
	db := dbtest.New(t)

	steps := []struct {
		eventType string
		relation  uint
	}{
		{domain.EVENT_WEBHOOK, 1},
		{domain.EVENT_WEBHOOK, 1}, // duplicate, ignored
		{domain.EVENT_WEBHOOK, 2},
	}
	for _, s := range steps {
		if err := r.Create(db, s.eventType, s.relation, "{}"); err != nil {
			t.Fatal(err)
		}
	}

	var count int64
	db.Model(&domain.Events{}).Count(&count)
	if count != 2 {
		t.Fatalf("got %d events, want 2", count)
	}

	if err := r.Create(db, domain.EVENT_WEBHOOK, 3, "{not json"); err == nil {
		t.Fatal("invalid payload accepted")
	}
}

func TestSelectNewAndDone(t *testing.T) {
	r := InitEventsRepo()
	db := dbtest.New(t)

	for i := uint(1); i <= 3; i++ {
		if err := r.Create(db, domain.EVENT_WEBHOOK, i, `{"url":"x"}`); err != nil {
			t.Fatal(err)
		}
	}

	events, err := r.SelectNew(db, time.Now().Add(time.Second), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].RelationID != 1 {
		t.Fatalf("unexpected batch %+v", events)
	}

	if err := r.Done(db, 1, domain.EVENT_WEBHOOK); err != nil {
		t.Fatal(err)
	}
	if err := r.Attempt(db, events[1].ID, false); err != nil {
		t.Fatal(err)
	}
	if err := r.Attempt(db, events[1].ID, true); err != nil {
		t.Fatal(err)
	}

	failed, err := r.Find(db, 2, domain.EVENT_WEBHOOK)
	if err != nil {
		t.Fatal(err)
	}
	if failed.Attempts != 2 || failed.Status != domain.EVENT_STATUS_FAILED {
		t.Fatalf("unexpected event %+v", failed)
	}

	left, err := r.SelectNew(db, time.Now().Add(time.Second), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].RelationID != 3 {
		t.Fatalf("unexpected rest %+v", left)
	}

	none, err := r.SelectNew(db, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("future filter ignored: %+v", none)
	}

	if _, err := r.Find(db, 99, domain.EVENT_WEBHOOK); !postgres.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}
