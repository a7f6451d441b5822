package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" //revive:disable:blank-imports

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/session"
)

// insertBatch keeps bulk inserts under SQLite's bound-variable limit
const insertBatch = 500

const sqliteSchema = `
CREATE TABLE conversations (
	partner           TEXT PRIMARY KEY,
	you               TEXT NOT NULL,
	total_messages    INTEGER NOT NULL,
	your_messages     INTEGER NOT NULL,
	first_message     TEXT NOT NULL,
	last_message      TEXT NOT NULL,
	category          TEXT NOT NULL,
	balance_score     REAL NOT NULL,
	consistency_score REAL NOT NULL,
	messages_per_day  REAL NOT NULL,
	longest_streak    INTEGER NOT NULL,
	bursts            INTEGER NOT NULL
);
CREATE TABLE messages (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	partner   TEXT NOT NULL REFERENCES conversations(partner),
	timestamp TEXT NOT NULL,
	sender    TEXT NOT NULL,
	type      TEXT NOT NULL,
	content   TEXT NOT NULL,
	week_key  TEXT NOT NULL,
	month_key TEXT NOT NULL
);
CREATE INDEX idx_messages_partner_week ON messages(partner, week_key);
CREATE TABLE week_clusters (
	partner    TEXT NOT NULL REFERENCES conversations(partner),
	week_key   TEXT NOT NULL,
	year       INTEGER NOT NULL,
	week       INTEGER NOT NULL,
	count      INTEGER NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL,
	PRIMARY KEY (partner, week_key)
);
CREATE TABLE month_groups (
	partner        TEXT NOT NULL REFERENCES conversations(partner),
	month_key      TEXT NOT NULL,
	year           INTEGER NOT NULL,
	month          INTEGER NOT NULL,
	month_name     TEXT NOT NULL,
	total_messages INTEGER NOT NULL,
	weeks          TEXT NOT NULL,
	PRIMARY KEY (partner, month_key)
);`

var (
	conversationColumns = []string{"partner", "you", "total_messages", "your_messages", "first_message", "last_message",
		"category", "balance_score", "consistency_score", "messages_per_day", "longest_streak", "bursts"}
	messageColumns = []string{"partner", "timestamp", "sender", "type", "content", "week_key", "month_key"}
	weekColumns    = []string{"partner", "week_key", "year", "week", "count", "start_date", "end_date"}
	monthColumns   = []string{"partner", "month_key", "year", "month", "month_name", "total_messages", "weeks"}
)

type conversationRow struct {
	Partner          string  `db:"partner"`
	You              string  `db:"you"`
	TotalMessages    int     `db:"total_messages"`
	YourMessages     int     `db:"your_messages"`
	FirstMessage     string  `db:"first_message"`
	LastMessage      string  `db:"last_message"`
	Category         string  `db:"category"`
	BalanceScore     float64 `db:"balance_score"`
	ConsistencyScore float64 `db:"consistency_score"`
	MessagesPerDay   float64 `db:"messages_per_day"`
	LongestStreak    int     `db:"longest_streak"`
	Bursts           int     `db:"bursts"`
}

type messageRow struct {
	Partner   string `db:"partner"`
	Timestamp string `db:"timestamp"`
	Sender    string `db:"sender"`
	Type      string `db:"type"`
	Content   string `db:"content"`
	WeekKey   string `db:"week_key"`
	MonthKey  string `db:"month_key"`
}

type weekRow struct {
	Partner   string `db:"partner"`
	WeekKey   string `db:"week_key"`
	Year      int    `db:"year"`
	Week      int    `db:"week"`
	Count     int    `db:"count"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
}

type monthRow struct {
	Partner       string `db:"partner"`
	MonthKey      string `db:"month_key"`
	Year          int    `db:"year"`
	Month         int    `db:"month"`
	MonthName     string `db:"month_name"`
	TotalMessages int    `db:"total_messages"`
	Weeks         string `db:"weeks"`
}

// SQLiteExporter writes the session into a SQLite database file
type SQLiteExporter struct{}

// Export builds the database in a temporary file and streams it to w
func (e *SQLiteExporter) Export(state *session.State, w io.Writer) error {
	tmp, err := os.CreateTemp("", "dm-insights-*.sqlite")
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Err: err}
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(path) }()

	if err := WriteSQLite(state, path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(w, f); err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *SQLiteExporter) Extension() string {
	return "sqlite"
}

// WriteSQLite creates a fresh database at path holding the session's
// conversations, messages and clusters
func WriteSQLite(state *session.State, path string) error {
	fail := func(err error) error {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fail(err)
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return fail(fmt.Errorf("failed to connect to database: %w", err))
	}
	defer func() { _ = db.Close() }()
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	tx, err := db.Beginx()
	if err != nil {
		return fail(err)
	}
	if err := populate(tx, state); err != nil {
		_ = tx.Rollback()
		return fail(err)
	}
	if err := tx.Commit(); err != nil {
		return fail(err)
	}

	internal.LogDebug("Wrote SQLite report to %s", path)
	return nil
}

func populate(tx *sqlx.Tx, state *session.State) error {
	if _, err := tx.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var (
		conversations []conversationRow
		messages      []messageRow
		weeks         []weekRow
		months        []monthRow
	)

	for _, partner := range state.Partners {
		conv := state.Conversations[partner]
		s := state.Stats[partner]

		conversations = append(conversations, conversationRow{
			Partner:          partner,
			You:              s.You,
			TotalMessages:    s.TotalMessages,
			YourMessages:     s.YourMessages,
			FirstMessage:     s.FirstMessage.Format(time.RFC3339),
			LastMessage:      s.LastMessage.Format(time.RFC3339),
			Category:         string(s.Category),
			BalanceScore:     s.BalanceScore,
			ConsistencyScore: s.ConsistencyScore,
			MessagesPerDay:   s.MessagesPerDay,
			LongestStreak:    s.Streaks.Longest,
			Bursts:           len(s.Bursts),
		})

		for _, msg := range conv.Messages {
			messages = append(messages, messageRow{
				Partner:   partner,
				Timestamp: msg.Timestamp.Format(time.RFC3339),
				Sender:    msg.From,
				Type:      string(msg.Type),
				Content:   msg.Content,
				WeekKey:   msg.WeekKey(),
				MonthKey:  msg.MonthKey(),
			})
		}

		for _, key := range conv.WeekKeys() {
			wc := conv.WeekClusters[key]
			weeks = append(weeks, weekRow{
				Partner:   partner,
				WeekKey:   key,
				Year:      wc.Year,
				Week:      wc.Week,
				Count:     wc.Count,
				StartDate: wc.DateRange.Start.Format(dateLayout),
				EndDate:   wc.DateRange.End.Format(dateLayout),
			})
		}

		for _, key := range conv.MonthKeys() {
			mg := conv.MonthGroups[key]
			weekKeys := make([]string, len(mg.Weeks))
			for i, wc := range mg.Weeks {
				weekKeys[i] = wc.Key()
			}
			months = append(months, monthRow{
				Partner:       partner,
				MonthKey:      key,
				Year:          mg.Year,
				Month:         int(mg.Month),
				MonthName:     mg.MonthName,
				TotalMessages: mg.TotalMessages,
				Weeks:         strings.Join(weekKeys, ","),
			})
		}
	}

	if err := insertAll(tx, "conversations", conversationColumns, conversations); err != nil {
		return err
	}
	if err := insertAll(tx, "messages", messageColumns, messages); err != nil {
		return err
	}
	if err := insertAll(tx, "week_clusters", weekColumns, weeks); err != nil {
		return err
	}
	return insertAll(tx, "month_groups", monthColumns, months)
}

// insertAll bulk inserts rows; columns must match the rows' db tags
func insertAll[T any](tx *sqlx.Tx, table string, columns []string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)",
		table, strings.Join(columns, ", "), strings.Join(columns, ", :"))

	for start := 0; start < len(rows); start += insertBatch {
		end := start + insertBatch
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := tx.NamedExec(query, rows[start:end]); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}
