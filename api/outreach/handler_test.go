package outreach

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freightops/loadmatch/core/matching"
	"github.com/freightops/loadmatch/core/model"
	coreoutreach "github.com/freightops/loadmatch/core/outreach"
	"github.com/freightops/loadmatch/infra/store"
	"github.com/freightops/loadmatch/infra/transport"
)

func newTestHandler(t *testing.T) (http.Handler, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	lane := model.Lane{OriginCity: "Dallas", OriginState: "TX", DestCity: "Atlanta", DestState: "GA"}
	st.AddLoad(model.Load{ID: 7, VentureID: 1, Lane: lane, EquipmentType: "Van"})
	st.AddCarrier(model.Carrier{ID: 1, Name: "Lone Star", Active: true, EquipmentTypes: []string{"Van"}, Email: "a@x.com"})
	st.AddCarrier(model.Carrier{ID: 2, Name: "Peach State", Active: true, EquipmentTypes: []string{"Van"}, Email: "b@x.com"})

	engine, err := matching.NewEngine(st, st, matching.HardEligibilityFilter{}, matching.NewScorer(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	sel, err := coreoutreach.NewSelector(engine)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	cfg := coreoutreach.Config{}
	cfg.SetDefaults()
	d, err := coreoutreach.NewDispatcher(cfg, st, sel, st, transport.NewMockTransport(), nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return NewSendHandler(d), st
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/freight/outreach/send", strings.NewReader(body))
	req.Header.Set("X-User", "dispatch@freightops.test")
	h.ServeHTTP(rec, req)
	return rec
}

func TestSendHandlerSuccess(t *testing.T) {
	h, st := newTestHandler(t)

	rec := post(h, `{"loadId":7,"channel":"email","body":"Van load available.","recipientCarrierIds":[1,2],"confirm":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp coreoutreach.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.SentCount != 2 || resp.RecipientCount != 2 {
		t.Errorf("response = %+v", resp)
	}

	msg, err := st.Message(httptest.NewRequest(http.MethodGet, "/", nil).Context(), resp.MessageID)
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if msg.Status != coreoutreach.StatusSent || msg.CreatedBy != "dispatch@freightops.test" {
		t.Errorf("message = %+v", msg)
	}
}

func TestSendHandlerConfirmRequired(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := post(h, `{"loadId":7,"channel":"email","body":"x","recipientCarrierIds":[1]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSendHandlerIneligibleLists(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := post(h, `{"loadId":7,"channel":"email","body":"x","recipientCarrierIds":[1,99],"confirm":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.InvalidIDs) != 1 || resp.InvalidIDs[0] != 99 {
		t.Errorf("invalidIds = %v, want [99]", resp.InvalidIDs)
	}
}

func TestSendHandlerLoadNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := post(h, `{"loadId":404,"channel":"email","body":"x","recipientCarrierIds":[1],"confirm":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSendHandlerBadPayloads(t *testing.T) {
	h, _ := newTestHandler(t)

	if rec := post(h, `{not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
	if rec := post(h, `{"loadId":7,"channel":"fax","body":"x","recipientCarrierIds":[1],"confirm":true}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad channel status = %d, want 400", rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/freight/outreach/send", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}
