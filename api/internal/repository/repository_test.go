package repository

import (
	"testing"
	"time"

	"sharkpay/api/internal/domain"
	"sharkpay/api/internal/infra/dbtest"
	"sharkpay/api/internal/infra/postgres"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestMerchantsRepo(t *testing.T) {
	db := dbtest.New(t)
	r := InitMerchantsRepo()

	m := &domain.Merchants{MerchantID: "uid1", BusinessName: "Shark Cafe", Sector: "F&B", ApiKey: "sk_live_abc"}
	if err := r.Create(db, m); err != nil {
		t.Fatal(err)
	}

	got, err := r.FindByID(db, "uid1")
	if err != nil {
		t.Fatal(err)
	}
	if got.BusinessName != "Shark Cafe" || !got.Balance.IsZero() || got.IsFrozen {
		t.Fatalf("unexpected merchant %+v", got)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := r.FindByIDForUpdate(tx, "uid1")
		if err != nil {
			return err
		}
		if locked.ApiKey != "sk_live_abc" {
			t.Fatalf("unexpected merchant %+v", locked)
		}
		_, err = r.FindByIDForUpdate(tx, "missing")
		if !postgres.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := r.AddBalance(db, "uid1", decimal.NewFromInt(148500)); err != nil {
		t.Fatal(err)
	}
	if err := r.AddBalance(db, "uid1", decimal.NewFromInt(1500)); err != nil {
		t.Fatal(err)
	}
	if err := r.Update(db, "uid1", map[string]any{"is_frozen": true}); err != nil {
		t.Fatal(err)
	}

	got, _ = r.FindByID(db, "uid1")
	if !got.Balance.Equal(decimal.NewFromInt(150000)) || !got.IsFrozen {
		t.Fatalf("balance %s frozen %v", got.Balance, got.IsFrozen)
	}

	if err := r.Update(db, "missing", map[string]any{"is_frozen": true}); !postgres.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestPaymentLinksRepo(t *testing.T) {
	db := dbtest.New(t)
	r := InitPaymentLinksRepo()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		link := &domain.PaymentLinks{
			Model:      domain.Model{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			LinkID:     gofakeit.UUID(),
			MerchantID: "m1",
			Amount:     decimal.NewFromInt(int64(1000 * (i + 1))),
			Status:     domain.LINK_UNPAID,
		}
		if err := r.Create(db, link); err != nil {
			t.Fatal(err)
		}
	}

	links, err := r.ListByMerchant(db, "m1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 2 || !links[0].Amount.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unexpected order %+v", links)
	}

	dup := &domain.PaymentLinks{LinkID: links[0].LinkID, MerchantID: "m1", Amount: decimal.NewFromInt(1)}
	if err := r.Create(db, dup); !postgres.IsDuplicate(err) {
		t.Fatalf("want duplicate, got %v", err)
	}

	ok, err := r.MarkPaid(db, links[0].LinkID, "payer", time.Now())
	if err != nil || !ok {
		t.Fatalf("first mark paid: %v %v", ok, err)
	}
	ok, err = r.MarkPaid(db, links[0].LinkID, "payer2", time.Now())
	if err != nil || ok {
		t.Fatalf("second mark paid must be refused: %v %v", ok, err)
	}

	paid, err := r.FindByLinkID(db, links[0].LinkID)
	if err != nil {
		t.Fatal(err)
	}
	if !paid.IsPaid() || paid.PaidByUserID == nil || *paid.PaidByUserID != "payer" || paid.PaidAt == nil {
		t.Fatalf("unexpected link %+v", paid)
	}
}

func TestInvoicesRepo(t *testing.T) {
	db := dbtest.New(t)
	r := InitInvoicesRepo()

	inv := &domain.Invoices{InvoiceID: gofakeit.UUID(), MerchantID: "m1", TargetPlan: domain.PLAN_PRO, Amount: decimal.NewFromInt(199000)}
	if err := r.Create(db, inv); err != nil {
		t.Fatal(err)
	}

	open, err := r.FindOpen(db, "m1")
	if err != nil || open.InvoiceID != inv.InvoiceID {
		t.Fatalf("open invoice: %+v %v", open, err)
	}

	ok, err := r.UpdateStatus(db, inv.InvoiceID, domain.INVOICE_UNPAID, domain.INVOICE_PAID, map[string]any{"payment_tx_id": "tx1"})
	if err != nil || !ok {
		t.Fatalf("update: %v %v", ok, err)
	}
	ok, err = r.UpdateStatus(db, inv.InvoiceID, domain.INVOICE_UNPAID, domain.INVOICE_CANCELED, nil)
	if err != nil || ok {
		t.Fatalf("stale update must be refused: %v %v", ok, err)
	}

	got, _ := r.FindByID(db, inv.InvoiceID)
	if got.Status != domain.INVOICE_PAID || got.PaymentTxID != "tx1" {
		t.Fatalf("unexpected invoice %+v", got)
	}

	if _, err := r.UpdateStatus(db, inv.InvoiceID, domain.INVOICE_PAID, domain.INVOICE_COMPLETED, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := r.FindOpen(db, "m1"); !postgres.IsNotFound(err) {
		t.Fatalf("completed invoice still open: %v", err)
	}

	list, err := r.ListByMerchant(db, "m1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list %+v %v", list, err)
	}
}

func TestTransactionsRepo(t *testing.T) {
	db := dbtest.New(t)
	r := InitTransactionsRepo()

	now := time.Now()
	statuses := []domain.TxStatus{domain.TX_COMPLETED, domain.TX_FAILED, domain.TX_COMPLETED}
	for i, s := range statuses {
		tx := &domain.Transactions{
			TransactionID: gofakeit.UUID(),
			ReceiverID:    "m1",
			Amount:        decimal.NewFromInt(10000),
			Fee:           decimal.NewFromInt(100),
			NetAmount:     decimal.NewFromInt(9900),
			Status:        s,
			Timestamp:     now.Add(time.Duration(i) * time.Minute),
		}
		if err := r.Create(db, tx); err != nil {
			t.Fatal(err)
		}
	}
	other := &domain.Transactions{TransactionID: "other", ReceiverID: "m2", Timestamp: now}
	if err := r.Create(db, other); err != nil {
		t.Fatal(err)
	}

	all, err := r.ListByReceiver(db, "m1", 50, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Timestamp.Before(all[1].Timestamp) {
		t.Fatalf("unexpected list %+v", all)
	}

	completed, err := r.ListByReceiver(db, "m1", 50, true)
	if err != nil || len(completed) != 2 {
		t.Fatalf("completed %+v %v", completed, err)
	}

	got, err := r.FindByTransactionID(db, "other")
	if err != nil {
		t.Fatal(err)
	}
	if byID, err := r.FindByID(db, got.ID); err != nil || byID.TransactionID != "other" {
		t.Fatalf("find by id: %+v %v", byID, err)
	}
}

func TestNotificationsRepo(t *testing.T) {
	db := dbtest.New(t)
	r := InitNotificationsRepo()

	n := &domain.Notifications{MerchantID: "m1", Type: domain.NOTIFICATION_UPGRADE_INVOICE, Title: "Upgrade", InvoiceID: "inv"}
	if err := r.Create(db, n); err != nil {
		t.Fatal(err)
	}

	if err := r.MarkRead(db, "m2", n.ID); !postgres.IsNotFound(err) {
		t.Fatalf("other merchant marked read: %v", err)
	}
	for range 2 {
		if err := r.MarkRead(db, "m1", n.ID); err != nil {
			t.Fatal(err)
		}
	}

	list, err := r.ListByMerchant(db, "m1", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].Read {
		t.Fatalf("unexpected list %+v", list)
	}
}
