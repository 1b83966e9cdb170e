// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb archives staking events in sqlite.
package eventdb

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/thor"
)

const selectEvents = "SELECT session, eventIndex, era, kind, stash, other, amount, cmixId FROM event"

// EventDB manages all archived events.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create event table")
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates a memory sqlite db.
func NewMem() (*EventDB, error) {
	db, err := New(":memory:")
	if err != nil {
		return nil, err
	}
	// each connection of an in-memory db sees its own database
	db.db.SetMaxOpenConns(1)
	return db, nil
}

// Insert inserts events into db, and drops events of the abandoned sessions.
func (db *EventDB) Insert(events []*Event, abandonedSessions []uint32) error {
	if len(events) == 0 && len(abandonedSessions) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, session := range abandonedSessions {
		if _, err = tx.Exec("DELETE FROM event WHERE session = ?;", session); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, event := range events {
		if _, err = tx.Exec("INSERT OR REPLACE INTO event(session, eventIndex, era, kind, stash, other, amount, cmixId) VALUES (?, ?, ?, ?, ?, ?, ?, ?);",
			event.Session,
			event.Index,
			event.Era,
			string(event.Kind),
			event.Stash.Bytes(),
			addressValue(event.Other),
			event.Amount.String(),
			bytes32Value(event.CmixID)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns events matching the filter.
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(selectEvents + " ORDER BY session, eventIndex ASC")
	}
	var args []any
	stmt := selectEvents + " WHERE 1"
	if filter.Range != nil {
		column := "era"
		if filter.Range.Unit == Session {
			column = "session"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + column + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + column + " <= ? "
		}
	}
	if filter.Stash != nil {
		args = append(args, filter.Stash.Bytes())
		stmt += " AND stash = ? "
	}
	if len(filter.Kinds) > 0 {
		marks := make([]string, 0, len(filter.Kinds))
		for _, kind := range filter.Kinds {
			args = append(args, string(kind))
			marks = append(marks, "?")
		}
		stmt += " AND kind IN (" + strings.Join(marks, ",") + ") "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY session DESC, eventIndex DESC "
	} else {
		stmt += " ORDER BY session ASC, eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

// NewestSession returns the latest archived session, false when empty.
func (db *EventDB) NewestSession() (uint32, bool, error) {
	var session sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(session) FROM event").Scan(&session); err != nil {
		return 0, false, err
	}
	if !session.Valid {
		return 0, false, nil
	}
	return uint32(session.Int64), true, nil
}

func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			session uint32
			index   uint32
			era     uint32
			kind    string
			stash   []byte
			other   []byte
			amount  string
			cmixID  []byte
		)
		if err := rows.Scan(
			&session,
			&index,
			&era,
			&kind,
			&stash,
			&other,
			&amount,
			&cmixID,
		); err != nil {
			return nil, err
		}
		value, err := thor.ParseBalance(amount)
		if err != nil {
			return nil, err
		}
		event := &Event{
			Session: session,
			Index:   index,
			Era:     era,
			Kind:    staking.EventKind(kind),
			Stash:   thor.BytesToAddress(stash),
			Amount:  value,
		}
		if len(other) > 0 {
			a := thor.BytesToAddress(other)
			event.Other = &a
		}
		if len(cmixID) > 0 {
			b := thor.BytesToBytes32(cmixID)
			event.CmixID = &b
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path returns the db file path.
func (db *EventDB) Path() string {
	return db.path
}

// Close closes sqlite.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func addressValue(a *thor.Address) []byte {
	if a == nil {
		return nil
	}
	return a.Bytes()
}

func bytes32Value(b *thor.Bytes32) []byte {
	if b == nil {
		return nil
	}
	return b.Bytes()
}
