package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/core/outreach"
)

// SQLiteStore persists carriers, loads, lane preferences and outreach rows
// in a SQLite database. It backs every storage interface of the engine:
// carrier pool, lane lookups, load lookups and the outreach message store.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS carriers (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    active INTEGER NOT NULL DEFAULT 1,
    blocked INTEGER NOT NULL DEFAULT 0,
    disqualified INTEGER NOT NULL DEFAULT 0,
    authorization TEXT NOT NULL DEFAULT '',
    equipment_types TEXT NOT NULL DEFAULT '[]',
    on_time_pct REAL,
    power_units INTEGER,
    recent_loads INTEGER,
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS loads (
    id INTEGER PRIMARY KEY,
    reference TEXT NOT NULL DEFAULT '',
    venture_id INTEGER NOT NULL,
    shipper_id INTEGER,
    origin_city TEXT NOT NULL DEFAULT '',
    origin_state TEXT NOT NULL DEFAULT '',
    dest_city TEXT NOT NULL DEFAULT '',
    dest_state TEXT NOT NULL DEFAULT '',
    miles REAL,
    equipment_type TEXT NOT NULL,
    weight_lbs INTEGER
);
CREATE TABLE IF NOT EXISTS carrier_preferred_lanes (
    carrier_id INTEGER NOT NULL,
    origin_city TEXT NOT NULL,
    origin_state TEXT NOT NULL,
    dest_city TEXT NOT NULL,
    dest_state TEXT NOT NULL,
    PRIMARY KEY (carrier_id, origin_city, origin_state, dest_city, dest_state)
);
CREATE TABLE IF NOT EXISTS shipper_preferred_lanes (
    shipper_id INTEGER NOT NULL,
    origin_city TEXT NOT NULL,
    origin_state TEXT NOT NULL,
    dest_city TEXT NOT NULL,
    dest_state TEXT NOT NULL,
    bonus REAL NOT NULL,
    PRIMARY KEY (shipper_id, origin_city, origin_state, dest_city, dest_state)
);
CREATE TABLE IF NOT EXISTS outreach_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    venture_id INTEGER NOT NULL,
    load_id INTEGER NOT NULL,
    channel TEXT NOT NULL,
    subject TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    provider TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS outreach_recipients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id INTEGER NOT NULL,
    carrier_id INTEGER NOT NULL,
    to_email TEXT NOT NULL DEFAULT '',
    to_phone TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_recipients_message ON outreach_recipients (message_id);
`

// NewSQLiteStore opens or creates the database at path and ensures schema.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// SaveCarrier inserts or replaces a carrier row.
func (s *SQLiteStore) SaveCarrier(ctx context.Context, c model.Carrier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	eq, err := json.Marshal(c.EquipmentTypes)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO carriers
        (id, name, active, blocked, disqualified, authorization, equipment_types,
         on_time_pct, power_units, recent_loads, email, phone)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Active, c.Blocked, c.Disqualified, c.Authorization.String(),
		string(eq), c.OnTimePct, c.PowerUnits, c.RecentLoads, c.Email, c.Phone)
	return err
}

// SaveLoad inserts or replaces a load row.
func (s *SQLiteStore) SaveLoad(ctx context.Context, l model.Load) error {
	if err := l.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO loads
        (id, reference, venture_id, shipper_id, origin_city, origin_state,
         dest_city, dest_state, miles, equipment_type, weight_lbs)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Reference, l.VentureID, l.ShipperID, l.Lane.OriginCity, l.Lane.OriginState,
		l.Lane.DestCity, l.Lane.DestState, l.Miles, l.EquipmentType, l.WeightLbs)
	return err
}

// SetPreferredLane declares a carrier preference for a lane.
func (s *SQLiteStore) SetPreferredLane(ctx context.Context, carrierID int64, lane model.Lane) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO carrier_preferred_lanes
        (carrier_id, origin_city, origin_state, dest_city, dest_state)
        VALUES (?, ?, ?, ?, ?)`,
		carrierID, lane.OriginCity, lane.OriginState, lane.DestCity, lane.DestState)
	return err
}

// SetShipperBonus declares a shipper bonus for a lane.
func (s *SQLiteStore) SetShipperBonus(ctx context.Context, shipperID int64, lane model.Lane, bonus float64) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO shipper_preferred_lanes
        (shipper_id, origin_city, origin_state, dest_city, dest_state, bonus)
        VALUES (?, ?, ?, ?, ?, ?)`,
		shipperID, lane.OriginCity, lane.OriginState, lane.DestCity, lane.DestState, bonus)
	return err
}

// CarrierPool implements matching.CarrierSource. The pool is every stored
// carrier; hard eligibility is applied by the caller.
func (s *SQLiteStore) CarrierPool(ctx context.Context, _ model.Load) ([]model.Carrier, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, active, blocked, disqualified,
        authorization, equipment_types, on_time_pct, power_units, recent_loads, email, phone
        FROM carriers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Carrier
	for rows.Next() {
		var c model.Carrier
		var auth, eq string
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.Blocked, &c.Disqualified,
			&auth, &eq, &c.OnTimePct, &c.PowerUnits, &c.RecentLoads, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		c.Authorization = model.ParseAuthorizationStatus(auth)
		if err := json.Unmarshal([]byte(eq), &c.EquipmentTypes); err != nil {
			return nil, fmt.Errorf("carrier %d equipment: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// HasPreferredLane implements matching.LaneSource.
func (s *SQLiteStore) HasPreferredLane(ctx context.Context, carrierID int64, lane model.Lane) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM carrier_preferred_lanes
        WHERE carrier_id = ? AND origin_city = ? AND origin_state = ? AND dest_city = ? AND dest_state = ?`,
		carrierID, lane.OriginCity, lane.OriginState, lane.DestCity, lane.DestState).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ShipperBonus implements matching.LaneSource.
func (s *SQLiteStore) ShipperBonus(ctx context.Context, shipperID int64, lane model.Lane) (*float64, error) {
	var bonus float64
	err := s.db.QueryRowContext(ctx, `SELECT bonus FROM shipper_preferred_lanes
        WHERE shipper_id = ? AND origin_city = ? AND origin_state = ? AND dest_city = ? AND dest_state = ?`,
		shipperID, lane.OriginCity, lane.OriginState, lane.DestCity, lane.DestState).Scan(&bonus)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bonus, nil
}

// Load implements outreach.LoadSource.
func (s *SQLiteStore) Load(ctx context.Context, id int64) (model.Load, error) {
	var l model.Load
	err := s.db.QueryRowContext(ctx, `SELECT id, reference, venture_id, shipper_id,
        origin_city, origin_state, dest_city, dest_state, miles, equipment_type, weight_lbs
        FROM loads WHERE id = ?`, id).Scan(
		&l.ID, &l.Reference, &l.VentureID, &l.ShipperID,
		&l.Lane.OriginCity, &l.Lane.OriginState, &l.Lane.DestCity, &l.Lane.DestState,
		&l.Miles, &l.EquipmentType, &l.WeightLbs)
	if err == sql.ErrNoRows {
		return model.Load{}, outreach.ErrLoadNotFound
	}
	if err != nil {
		return model.Load{}, err
	}
	return l, nil
}

// CreateMessage implements outreach.Store.
func (s *SQLiteStore) CreateMessage(ctx context.Context, m *outreach.Message) error {
	res, err := s.db.ExecContext(ctx, `INSERT INTO outreach_messages
        (venture_id, load_id, channel, subject, body, created_by, provider, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.VentureID, m.LoadID, m.Channel.String(), m.Subject, m.Body,
		m.CreatedBy, m.Provider, m.Status.String(), m.CreatedAt.Unix())
	if err != nil {
		return err
	}
	m.ID, err = res.LastInsertId()
	return err
}

// CreateRecipients implements outreach.Store.
func (s *SQLiteStore) CreateRecipients(ctx context.Context, recipients []*outreach.Recipient) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, r := range recipients {
		res, err := tx.ExecContext(ctx, `INSERT INTO outreach_recipients
            (message_id, carrier_id, to_email, to_phone, status, error)
            VALUES (?, ?, ?, ?, ?, ?)`,
			r.MessageID, r.CarrierID, r.ToEmail, r.ToPhone, r.Status.String(), r.Error)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if r.ID, err = res.LastInsertId(); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// UpdateRecipient implements outreach.Store.
func (s *SQLiteStore) UpdateRecipient(ctx context.Context, id int64, status outreach.RecipientStatus, errText string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE outreach_recipients SET status = ?, error = ? WHERE id = ?`,
		status.String(), errText, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("recipient %d not found", id)
	}
	return err
}

// UpdateMessageStatus implements outreach.Store.
func (s *SQLiteStore) UpdateMessageStatus(ctx context.Context, id int64, status outreach.MessageStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE outreach_messages SET status = ? WHERE id = ?`,
		status.String(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("message %d not found", id)
	}
	return err
}

// Message implements outreach.Store.
func (s *SQLiteStore) Message(ctx context.Context, id int64) (outreach.Message, error) {
	var m outreach.Message
	var channel, status string
	var created int64
	err := s.db.QueryRowContext(ctx, `SELECT id, venture_id, load_id, channel, subject,
        body, created_by, provider, status, created_at FROM outreach_messages WHERE id = ?`, id).Scan(
		&m.ID, &m.VentureID, &m.LoadID, &channel, &m.Subject,
		&m.Body, &m.CreatedBy, &m.Provider, &status, &created)
	if err == sql.ErrNoRows {
		return outreach.Message{}, fmt.Errorf("message %d not found", id)
	}
	if err != nil {
		return outreach.Message{}, err
	}
	if m.Channel, err = model.ParseChannel(channel); err != nil {
		return outreach.Message{}, err
	}
	m.Status = outreach.ParseMessageStatus(status)
	m.CreatedAt = time.Unix(created, 0).UTC()
	return m, nil
}

// Recipients implements outreach.Store.
func (s *SQLiteStore) Recipients(ctx context.Context, messageID int64) ([]outreach.Recipient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, message_id, carrier_id, to_email, to_phone,
        status, error FROM outreach_recipients WHERE message_id = ? ORDER BY id`, messageID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []outreach.Recipient
	for rows.Next() {
		var r outreach.Recipient
		var status string
		if err := rows.Scan(&r.ID, &r.MessageID, &r.CarrierID, &r.ToEmail, &r.ToPhone,
			&status, &r.Error); err != nil {
			return nil, err
		}
		r.Status = outreach.ParseRecipientStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}
