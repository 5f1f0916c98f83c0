package outreach

import (
	"context"
	"fmt"
	"time"

	"github.com/freightops/loadmatch/core/audit"
	"github.com/freightops/loadmatch/core/events"
	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/infra/logger"
	"github.com/freightops/loadmatch/internal/eventbus"
)

// Audit actions recorded per dispatch attempt.
const (
	AuditDomain        = "freight"
	ActionSend         = "OUTREACH_SEND"
	ActionSendDryRun   = "OUTREACH_SEND_DRY_RUN"
	errNoTransportData = "no transport result"
)

// Request is a caller's dispatch order: one load, one channel, an explicit
// recipient list, and the confirmation flag.
type Request struct {
	LoadID              int64         `json:"loadId"`
	Channel             model.Channel `json:"channel"`
	Subject             string        `json:"subject,omitempty"`
	Body                string        `json:"body,omitempty"`
	RecipientCarrierIDs []int64       `json:"recipientCarrierIds"`
	Confirm             bool          `json:"confirm"`
	CreatedBy           string        `json:"-"`
}

// Response summarizes one dispatch attempt.
type Response struct {
	Success        bool  `json:"success"`
	MessageID      int64 `json:"messageId"`
	DryRun         bool  `json:"dryRun"`
	SentCount      int   `json:"sentCount"`
	FailedCount    int   `json:"failedCount"`
	RecipientCount int   `json:"recipientCount"`
}

// Dispatcher runs outreach attempts end to end: request validation,
// recipient selection, persistence, transport, reconciliation, and the
// audit trail. One Dispatch call is one attempt; there are no retries.
type Dispatcher struct {
	cfg       Config
	loads     LoadSource
	selector  *Selector
	store     Store
	transport Transport
	auditSink audit.Sink
	sink      coremetrics.OutreachSink
	bus       eventbus.EventBus
	log       logger.Logger
}

// NewDispatcher creates a Dispatcher. The audit sink, metrics sink and bus
// may be nil; the logger defaults to a no-op.
func NewDispatcher(
	cfg Config,
	loads LoadSource,
	selector *Selector,
	store Store,
	transport Transport,
	auditSink audit.Sink,
	sink coremetrics.OutreachSink,
	bus eventbus.EventBus,
	log logger.Logger,
) (*Dispatcher, error) {
	if loads == nil || selector == nil || store == nil || transport == nil {
		return nil, fmt.Errorf("outreach: nil parameter provided to NewDispatcher")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if auditSink == nil {
		auditSink = audit.NopSink{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Dispatcher{
		cfg:       cfg,
		loads:     loads,
		selector:  selector,
		store:     store,
		transport: transport,
		auditSink: auditSink,
		sink:      sink,
		bus:       bus,
		log:       log,
	}, nil
}

// Dispatch runs one outreach attempt. The confirm guard runs before any
// other validation, and the channel cap rejects an oversized proposal
// before the load is even looked up; no rows are created until the request
// is fully valid. In dry-run mode the message and recipient rows are still
// created (the message with status DRY_RUN, recipients left PENDING) but
// the transport is never invoked.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, error) {
	if !req.Confirm {
		return Response{}, ErrConfirmRequired
	}
	if len(req.RecipientCarrierIDs) == 0 {
		return Response{}, ErrNoValidRecipients
	}
	if limit := d.cfg.Cap(req.Channel); limit > 0 && len(req.RecipientCarrierIDs) > limit {
		return Response{}, &CapExceededError{Channel: req.Channel, Cap: limit, Requested: len(req.RecipientCarrierIDs)}
	}

	load, err := d.loads.Load(ctx, req.LoadID)
	if err != nil {
		return Response{}, err
	}

	body := req.Body
	if body == "" {
		body = DefaultBody(load)
	}
	if body == "" {
		return Response{}, ErrEmptyBody
	}
	subject := ""
	if req.Channel == model.ChannelEmail {
		subject = req.Subject
		if subject == "" {
			subject = DefaultSubject(load)
		}
	}

	carriers, err := d.selector.Select(ctx, load, req.Channel, req.RecipientCarrierIDs, d.cfg.Cap(req.Channel))
	if err != nil {
		return Response{}, err
	}

	status := StatusQueued
	if d.cfg.DryRun {
		status = StatusDryRun
	}
	msg := &Message{
		VentureID: load.VentureID,
		LoadID:    load.ID,
		Channel:   req.Channel,
		Subject:   subject,
		Body:      body,
		CreatedBy: req.CreatedBy,
		Provider:  d.cfg.Provider(req.Channel),
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.store.CreateMessage(ctx, msg); err != nil {
		return Response{}, fmt.Errorf("create message: %w", err)
	}

	recipients := make([]*Recipient, len(carriers))
	addresses := make([]string, len(carriers))
	for i, c := range carriers {
		r := &Recipient{
			MessageID: msg.ID,
			CarrierID: c.ID,
			Status:    RecipientPending,
		}
		addr := c.AddressFor(req.Channel)
		if req.Channel == model.ChannelSMS {
			r.ToPhone = addr
		} else {
			r.ToEmail = addr
		}
		recipients[i] = r
		addresses[i] = addr
	}
	if err := d.store.CreateRecipients(ctx, recipients); err != nil {
		return Response{}, fmt.Errorf("create recipients: %w", err)
	}

	if d.cfg.DryRun {
		return d.finishDryRun(ctx, msg, recipients)
	}
	return d.send(ctx, msg, recipients, addresses)
}

func (d *Dispatcher) finishDryRun(ctx context.Context, msg *Message, recipients []*Recipient) (Response, error) {
	d.log.Infof("Dry-run outreach for load %d: %d recipient(s) over %s, nothing sent",
		msg.LoadID, len(recipients), msg.Channel)

	now := time.Now().UTC()
	outcomes := make([]coremetrics.OutreachResult, 0, len(recipients))
	for _, r := range recipients {
		outcomes = append(outcomes, coremetrics.OutreachResult{
			MessageID: msg.ID,
			LoadID:    msg.LoadID,
			CarrierID: r.CarrierID,
			Channel:   msg.Channel,
			Status:    RecipientPending.String(),
			DryRun:    true,
			Time:      now,
		})
	}
	if err := d.sink.RecordOutreachResult(outcomes); err != nil {
		d.log.Errorf("Failed to record dry-run outcomes for message %d: %v", msg.ID, err)
	}

	d.recordAudit(ctx, ActionSendDryRun, msg, len(recipients), 0, 0)
	d.publish(events.SendEvent{
		MessageID:  msg.ID,
		LoadID:     msg.LoadID,
		Channel:    msg.Channel,
		DryRun:     true,
		Recipients: len(recipients),
	})
	return Response{
		Success:        true,
		MessageID:      msg.ID,
		DryRun:         true,
		RecipientCount: len(recipients),
	}, nil
}

func (d *Dispatcher) send(ctx context.Context, msg *Message, recipients []*Recipient, addresses []string) (Response, error) {
	batch := BatchMessage{
		Subject:  msg.Subject,
		Body:     msg.Body,
		From:     d.from(msg.Channel),
		FromName: d.cfg.FromName,
	}

	start := time.Now()
	results, err := d.transport.SendBatch(ctx, msg.Channel, batch, addresses)
	transportLatency.WithLabelValues(msg.Channel.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		d.log.Errorf("Transport call failed for message %d: %v", msg.ID, err)
		results = make([]Result, len(recipients))
		for i := range results {
			results[i] = Result{Success: false, Error: err.Error()}
		}
	}

	sent, failed := d.reconcile(ctx, msg, recipients, results)

	final := FinalStatus(sent, failed)
	if err := d.store.UpdateMessageStatus(ctx, msg.ID, final); err != nil {
		d.log.Errorf("Failed to finalize message %d status %s: %v", msg.ID, final, err)
	}
	msg.Status = final
	messagesDispatched.WithLabelValues(msg.Channel.String(), final.String()).Inc()

	d.log.Infof("Outreach message %d for load %d finished %s: %d sent, %d failed of %d",
		msg.ID, msg.LoadID, final, sent, failed, len(recipients))

	d.recordAudit(ctx, ActionSend, msg, len(recipients), sent, failed)
	d.publish(events.SendEvent{
		MessageID:  msg.ID,
		LoadID:     msg.LoadID,
		Channel:    msg.Channel,
		Sent:       sent,
		Failed:     failed,
		Recipients: len(recipients),
	})

	return Response{
		Success:        true,
		MessageID:      msg.ID,
		SentCount:      sent,
		FailedCount:    failed,
		RecipientCount: len(recipients),
	}, nil
}

// reconcile maps transport results onto recipient rows. A result array
// shorter than the recipient list marks the unmatched tail as failed.
func (d *Dispatcher) reconcile(ctx context.Context, msg *Message, recipients []*Recipient, results []Result) (sent, failed int) {
	now := time.Now().UTC()
	outcomes := make([]coremetrics.OutreachResult, 0, len(recipients))
	for i, r := range recipients {
		res := Result{Success: false, Error: errNoTransportData}
		if i < len(results) {
			res = results[i]
		}

		status := RecipientFailed
		if res.Success {
			status = RecipientSent
			sent++
		} else {
			failed++
		}
		r.Status = status
		r.Error = res.Error
		if err := d.store.UpdateRecipient(ctx, r.ID, status, res.Error); err != nil {
			d.log.Errorf("Failed to update recipient %d on message %d: %v", r.ID, msg.ID, err)
		}

		recipientsTotal.WithLabelValues(msg.Channel.String(), status.String()).Inc()
		d.publish(events.RecipientEvent{
			MessageID: msg.ID,
			CarrierID: r.CarrierID,
			Channel:   msg.Channel,
			Sent:      res.Success,
			Err:       res.Error,
		})
		outcomes = append(outcomes, coremetrics.OutreachResult{
			MessageID: msg.ID,
			LoadID:    msg.LoadID,
			CarrierID: r.CarrierID,
			Channel:   msg.Channel,
			Status:    status.String(),
			Error:     res.Error,
			Time:      now,
		})
	}
	if err := d.sink.RecordOutreachResult(outcomes); err != nil {
		d.log.Errorf("Failed to record outreach results for message %d: %v", msg.ID, err)
	}
	return sent, failed
}

// recordAudit emits the single audit event for the attempt. Audit failures
// are logged and swallowed; the dispatch outcome stands.
func (d *Dispatcher) recordAudit(ctx context.Context, action string, msg *Message, recipients, sent, failed int) {
	ev := audit.NewEvent(AuditDomain, action, msg.LoadID, map[string]any{
		"message_id": msg.ID,
		"channel":    msg.Channel.String(),
		"recipients": recipients,
		"sent":       sent,
		"failed":     failed,
		"created_by": msg.CreatedBy,
	})
	if err := d.auditSink.Record(ctx, ev); err != nil {
		d.log.Errorf("Failed to record audit event for message %d: %v", msg.ID, err)
	}
}

func (d *Dispatcher) publish(e eventbus.Event) {
	if d.bus != nil {
		d.bus.Publish(e)
	}
}

func (d *Dispatcher) from(ch model.Channel) string {
	if ch == model.ChannelSMS {
		return d.cfg.FromNumber
	}
	return d.cfg.FromEmail
}
