package crm

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "crm.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func insertContact(t *testing.T, db *sql.DB, name, email, phone string, score int, birthday string) int64 {
	t.Helper()

	res, err := db.Exec(
		`INSERT INTO contacts (name, email, phone, score, birthday) VALUES (?, ?, ?, ?, ?)`,
		name, email, phone, score, birthday,
	)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertInteraction(t *testing.T, db *sql.DB, contactID int64, date, subject string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO interactions (contact_id, date, subject, snippet, source) VALUES (?, ?, ?, ?, ?)`,
		contactID, date, subject, "", "email",
	)
	require.NoError(t, err)
}

func TestContacts_WithBirthday_FiltersByDateAndScore(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)
	ctx := context.Background()

	insertContact(t, db, "Ada Lovelace", "ada@x.com", "", 80, "1990-03-14")
	insertContact(t, db, "Wrong Day", "wrong@x.com", "", 90, "1990-03-15")
	insertContact(t, db, "Low Score", "low@x.com", "", 20, "1988-03-14")
	insertContact(t, db, "No Birthday", "none@x.com", "", 95, "")

	contacts, err := store.WithBirthday(ctx, "03-14", 30)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ada Lovelace", contacts[0].Name)
}

func TestContacts_WithBirthday_ThresholdIsExclusive(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)
	ctx := context.Background()

	insertContact(t, db, "At Threshold", "at@x.com", "", 30, "1990-03-14")
	insertContact(t, db, "Above Threshold", "above@x.com", "", 31, "1990-03-14")

	contacts, err := store.WithBirthday(ctx, "03-14", 30)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Above Threshold", contacts[0].Name)
}

func TestContacts_WithBirthday_DeduplicatesByEmail(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)
	ctx := context.Background()

	// Same contact imported from two sources with different scores
	insertContact(t, db, "Ada (LinkedIn)", "a@x.com", "", 91, "1990-03-14")
	insertContact(t, db, "Ada (Gmail)", "a@x.com", "", 40, "1990-03-14")

	contacts, err := store.WithBirthday(ctx, "03-14", 30)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, 91, contacts[0].Score, "highest-scoring import must survive")
}

func TestContacts_WithBirthday_EmptyEmailNeverCollapses(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)
	ctx := context.Background()

	insertContact(t, db, "Anon One", "", "", 60, "1990-03-14")
	insertContact(t, db, "Anon Two", "", "", 50, "1990-03-14")

	contacts, err := store.WithBirthday(ctx, "03-14", 30)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestContacts_WithBirthday_OrderedByScoreDescending(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)
	ctx := context.Background()

	insertContact(t, db, "Mid", "mid@x.com", "", 55, "1990-03-14")
	insertContact(t, db, "High", "high@x.com", "", 92, "1990-03-14")
	insertContact(t, db, "Low", "lowish@x.com", "", 35, "1990-03-14")

	contacts, err := store.WithBirthday(ctx, "03-14", 30)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, []string{"High", "Mid", "Low"}, []string{contacts[0].Name, contacts[1].Name, contacts[2].Name})
}

func TestContacts_WithBirthday_AttachesMostRecentInteraction(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)
	ctx := context.Background()

	id := insertContact(t, db, "Ada", "ada@x.com", "", 80, "1990-03-14")
	insertInteraction(t, db, id, "2024-01-10", "old thread")
	insertInteraction(t, db, id, "2024-06-02", "catch up call")
	insertContact(t, db, "Quiet", "quiet@x.com", "", 70, "1990-03-14")

	contacts, err := store.WithBirthday(ctx, "03-14", 30)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	require.NotNil(t, contacts[0].LastInteraction)
	assert.Equal(t, "catch up call", contacts[0].LastInteraction.Subject)
	assert.Nil(t, contacts[1].LastInteraction)
}

func TestContacts_WithBirthday_EmptyResultIsSuccess(t *testing.T) {
	db := newTestDB(t)
	store := NewContacts(db)

	contacts, err := store.WithBirthday(context.Background(), "12-25", 30)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
