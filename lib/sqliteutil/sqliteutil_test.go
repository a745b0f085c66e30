package sqliteutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `
create table if not exists kv (
    key text primary key,
    value text not null
);
`

func TestOpenFileAndApplySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")

	db, err := OpenFile(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ApplySchema(db, testSchema))
	// applying twice must be harmless
	require.NoError(t, ApplySchema(db, testSchema))

	_, err = db.Exec(`insert into kv (key, value) values ('a', 'b')`)
	require.NoError(t, err)

	var value string
	err = db.QueryRow(`select value from kv where key = 'a'`).Scan(&value)
	require.NoError(t, err)
	require.Equal(t, "b", value)
}

func TestConfigRequiresTarget(t *testing.T) {
	_, err := Config{}.OpenDB()
	require.Error(t, err)
}

func TestConfigOpensFile(t *testing.T) {
	db, err := Config{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())
}
