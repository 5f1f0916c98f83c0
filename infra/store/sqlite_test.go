package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/core/outreach"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func testLane() model.Lane {
	return model.Lane{OriginCity: "Dallas", OriginState: "TX", DestCity: "Atlanta", DestState: "GA"}
}

func TestSQLiteCarrierRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := model.Carrier{
		ID:             11,
		Name:           "Lone Star Freight",
		Active:         true,
		Authorization:  model.AuthAuthorized,
		EquipmentTypes: []string{"Van", "Reefer"},
		OnTimePct:      fptr(93.5),
		PowerUnits:     iptr(12),
		Email:          "ops@lonestar.test",
		Phone:          "+15550000011",
	}
	if err := s.SaveCarrier(ctx, in); err != nil {
		t.Fatalf("SaveCarrier: %v", err)
	}

	pool, err := s.CarrierPool(ctx, model.Load{})
	if err != nil {
		t.Fatalf("CarrierPool: %v", err)
	}
	if len(pool) != 1 {
		t.Fatalf("pool size = %d, want 1", len(pool))
	}
	got := pool[0]
	if got.ID != in.ID || got.Name != in.Name || !got.Active {
		t.Errorf("carrier = %+v", got)
	}
	if got.Authorization != model.AuthAuthorized {
		t.Errorf("authorization = %v, want authorized", got.Authorization)
	}
	if len(got.EquipmentTypes) != 2 || got.EquipmentTypes[0] != "Van" {
		t.Errorf("equipment = %v", got.EquipmentTypes)
	}
	if got.OnTimePct == nil || *got.OnTimePct != 93.5 {
		t.Errorf("on_time_pct = %v, want 93.5", got.OnTimePct)
	}
	if got.RecentLoads != nil {
		t.Errorf("recent_loads = %v, want nil", got.RecentLoads)
	}
}

func TestSQLiteLaneLookups(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	lane := testLane()

	if err := s.SetPreferredLane(ctx, 11, lane); err != nil {
		t.Fatalf("SetPreferredLane: %v", err)
	}
	ok, err := s.HasPreferredLane(ctx, 11, lane)
	if err != nil || !ok {
		t.Errorf("HasPreferredLane = %v, %v; want true", ok, err)
	}
	ok, err = s.HasPreferredLane(ctx, 11, model.Lane{OriginCity: "Austin", OriginState: "TX", DestCity: "Atlanta", DestState: "GA"})
	if err != nil || ok {
		t.Errorf("different lane: HasPreferredLane = %v, %v; want false", ok, err)
	}

	if err := s.SetShipperBonus(ctx, 3, lane, 15); err != nil {
		t.Fatalf("SetShipperBonus: %v", err)
	}
	bonus, err := s.ShipperBonus(ctx, 3, lane)
	if err != nil {
		t.Fatalf("ShipperBonus: %v", err)
	}
	if bonus == nil || *bonus != 15 {
		t.Errorf("bonus = %v, want 15", bonus)
	}
	bonus, err = s.ShipperBonus(ctx, 99, lane)
	if err != nil {
		t.Fatalf("ShipperBonus: %v", err)
	}
	if bonus != nil {
		t.Errorf("undeclared bonus = %v, want nil", bonus)
	}
}

func TestSQLiteLoadLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := model.Load{
		ID:            7,
		Reference:     "LD-1007",
		VentureID:     1,
		Lane:          testLane(),
		Miles:         fptr(780),
		EquipmentType: "Van",
	}
	if err := s.SaveLoad(ctx, in); err != nil {
		t.Fatalf("SaveLoad: %v", err)
	}

	got, err := s.Load(ctx, 7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Reference != "LD-1007" || got.Lane != in.Lane || got.EquipmentType != "Van" {
		t.Errorf("load = %+v", got)
	}
	if got.ShipperID != nil {
		t.Errorf("shipper_id = %v, want nil", got.ShipperID)
	}

	_, err = s.Load(ctx, 404)
	if !errors.Is(err, outreach.ErrLoadNotFound) {
		t.Errorf("missing load error = %v, want ErrLoadNotFound", err)
	}
}

func TestSQLiteOutreachLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	msg := &outreach.Message{
		VentureID: 1,
		LoadID:    7,
		Channel:   model.ChannelEmail,
		Subject:   "Load Available",
		Body:      "Van load, Dallas to Atlanta.",
		CreatedBy: "dispatch@freightops.test",
		Provider:  "sendgrid",
		Status:    outreach.StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.ID == 0 {
		t.Fatal("message id not assigned")
	}

	recipients := []*outreach.Recipient{
		{MessageID: msg.ID, CarrierID: 11, ToEmail: "ops@lonestar.test", Status: outreach.RecipientPending},
		{MessageID: msg.ID, CarrierID: 12, ToEmail: "ops@peach.test", Status: outreach.RecipientPending},
	}
	if err := s.CreateRecipients(ctx, recipients); err != nil {
		t.Fatalf("CreateRecipients: %v", err)
	}
	if recipients[0].ID == 0 || recipients[1].ID == 0 {
		t.Fatal("recipient ids not assigned")
	}

	if err := s.UpdateRecipient(ctx, recipients[0].ID, outreach.RecipientSent, ""); err != nil {
		t.Fatalf("UpdateRecipient: %v", err)
	}
	if err := s.UpdateRecipient(ctx, recipients[1].ID, outreach.RecipientFailed, "bounced"); err != nil {
		t.Fatalf("UpdateRecipient: %v", err)
	}
	if err := s.UpdateMessageStatus(ctx, msg.ID, outreach.StatusPartial); err != nil {
		t.Fatalf("UpdateMessageStatus: %v", err)
	}

	gotMsg, err := s.Message(ctx, msg.ID)
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if gotMsg.Status != outreach.StatusPartial || gotMsg.Channel != model.ChannelEmail {
		t.Errorf("message = %+v", gotMsg)
	}

	got, err := s.Recipients(ctx, msg.ID)
	if err != nil {
		t.Fatalf("Recipients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recipients = %d, want 2", len(got))
	}
	if got[0].Status != outreach.RecipientSent || got[0].Error != "" {
		t.Errorf("first recipient = %+v", got[0])
	}
	if got[1].Status != outreach.RecipientFailed || got[1].Error != "bounced" {
		t.Errorf("second recipient = %+v", got[1])
	}
}

func TestSQLiteUpdateMissingRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpdateRecipient(ctx, 99, outreach.RecipientSent, ""); err == nil {
		t.Error("expected error updating missing recipient")
	}
	if err := s.UpdateMessageStatus(ctx, 99, outreach.StatusSent); err == nil {
		t.Error("expected error updating missing message")
	}
}
