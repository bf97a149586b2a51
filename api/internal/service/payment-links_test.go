package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sharkpay/api/internal/domain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

func TestCreateLink(t *testing.T) {
	env := newTestEnv(t)
	s := env.links()
	m := env.merchant(t, false)
	frozen := env.merchant(t, true)

	if _, err := s.Create(m.MerchantID, vnd(999), "coffee"); !errors.Is(err, domain.ErrAmountTooSmall) {
		t.Fatalf("expected ErrAmountTooSmall, got %v", err)
	}
	if _, err := s.Create(m.MerchantID, vnd(1000), "  "); !errors.Is(err, domain.ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := s.Create(frozen.MerchantID, vnd(1000), "coffee"); !errors.Is(err, domain.ErrMerchantFrozen) {
		t.Fatalf("expected ErrMerchantFrozen, got %v", err)
	}
	if _, err := s.Create("missing", vnd(1000), "coffee"); !errors.Is(err, domain.ErrMerchantNotFound) {
		t.Fatalf("expected ErrMerchantNotFound, got %v", err)
	}

	link, err := s.Create(m.MerchantID, vnd(1000), " coffee ")
	if err != nil {
		t.Fatal(err)
	}
	if uuid.Validate(link.LinkID) != nil || link.Status != domain.LINK_UNPAID || link.PaidByUserID != nil || link.Description != "coffee" {
		t.Fatalf("unexpected link %+v", link)
	}

	found, err := s.FindForMerchant(m.MerchantID, link.LinkID)
	if err != nil || found.LinkID != link.LinkID {
		t.Fatalf("find own link: %v", err)
	}
	if _, err := s.FindForMerchant(frozen.MerchantID, link.LinkID); !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound for foreign link, got %v", err)
	}
}

func TestListLinks(t *testing.T) {
	env := newTestEnv(t)
	s := env.links()
	m := env.merchant(t, false)

	for range 25 {
		if _, err := s.Create(m.MerchantID, vnd(int64(gofakeit.IntRange(1000, 100000))), gofakeit.ProductName()); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 20},
		{-5, 20},
		{3, 3},
		{500, 25},
	}
	for _, tt := range tests {
		links, err := s.List(m.MerchantID, tt.limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(links) != tt.want {
			t.Errorf("limit %d: expected %d links, got %d", tt.limit, tt.want, len(links))
		}
	}
}

func TestCreateBill(t *testing.T) {
	env := newTestEnv(t)
	s := env.links()
	m := env.merchant(t, false)
	ctx := context.Background()

	req := BillRequest{MerchantID: m.MerchantID, BillID: "INV-1", Amount: vnd(150000), Description: " order 1 ", WebhookURL: "https://shop.example.com/hook"}

	res, err := s.CreateBill(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Existing {
		t.Fatal("first request must create the bill")
	}
	if want := env.config.Api.PublicURL + "/pay/" + m.MerchantID + "/INV-1"; res.CheckoutURL != want {
		t.Fatalf("expected %s, got %s", want, res.CheckoutURL)
	}
	if res.Link.LinkID != m.MerchantID+"_INV-1" || res.Link.Description != "order 1" {
		t.Fatalf("unexpected link %+v", res.Link)
	}

	again, err := s.CreateBill(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Existing || again.CheckoutURL != res.CheckoutURL {
		t.Fatalf("expected idempotent response, got %+v", again)
	}

	found, err := s.FindBill(m.MerchantID, "INV-1")
	if err != nil {
		t.Fatal(err)
	}
	if found.WebhookURL != req.WebhookURL {
		t.Fatalf("unexpected webhook url %s", found.WebhookURL)
	}

	if _, err := env.repos.PaymentLinks.MarkPaid(env.db, res.Link.LinkID, "payer", res.Link.CreatedAt); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateBill(ctx, req); !errors.Is(err, domain.ErrBillAlreadyPaid) {
		t.Fatalf("expected ErrBillAlreadyPaid, got %v", err)
	}
}

func TestCreateBillMerchantChecks(t *testing.T) {
	env := newTestEnv(t)
	s := env.links()
	frozen := env.merchant(t, true)
	ctx := context.Background()

	if _, err := s.CreateBill(ctx, BillRequest{MerchantID: "missing", BillID: "1", Amount: vnd(1)}); !errors.Is(err, domain.ErrMerchantNotFound) {
		t.Fatalf("expected ErrMerchantNotFound, got %v", err)
	}
	if _, err := s.CreateBill(ctx, BillRequest{MerchantID: frozen.MerchantID, BillID: "1", Amount: vnd(1)}); !errors.Is(err, domain.ErrMerchantFrozen) {
		t.Fatalf("expected ErrMerchantFrozen, got %v", err)
	}
}

func TestCreateBillConcurrent(t *testing.T) {
	env := newTestEnv(t)
	s := env.links()
	m := env.merchant(t, false)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.CreateBill(context.Background(), BillRequest{MerchantID: m.MerchantID, BillID: "same", Amount: vnd(5000)})
			if err != nil {
				t.Error(err)
				return
			}
			if !res.Existing {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one creation, got %d", created)
	}
	links, err := env.repos.PaymentLinks.ListByMerchant(env.db, m.MerchantID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 {
		t.Fatalf("expected one stored link, got %d", len(links))
	}
}

func TestFindBillMismatch(t *testing.T) {
	env := newTestEnv(t)
	s := env.links()

	m := env.merchant(t, false)
	if _, err := s.CreateBill(context.Background(), BillRequest{MerchantID: m.MerchantID, BillID: "a_b", Amount: vnd(5000)}); err != nil {
		t.Fatal(err)
	}

	// same link id, different split
	if _, err := s.FindBill(m.MerchantID+"_a", "b"); !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
	if _, err := s.FindBill(m.MerchantID, "nope"); !errors.Is(err, domain.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}
