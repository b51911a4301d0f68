package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateList(t *testing.T) {
	var out bytes.Buffer
	migrateCmd.SetOut(&out)
	migrateCmd.SetArgs([]string{"--list"})
	t.Cleanup(func() { listMigrations = false })

	require.NoError(t, migrateCmd.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "0001_init.sql", lines[0])
}
