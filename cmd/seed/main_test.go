package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRejectsBadFileBeforeConnecting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: [unclosed"), 0o600))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--file", path, "--mongo-uri", "mongodb://127.0.0.1:1"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode content bundle")
}

func TestSeedFlagDefaults(t *testing.T) {
	t.Setenv("MONGO_DB", "")
	cmd := newRootCmd()

	db, err := cmd.Flags().GetString("database")
	require.NoError(t, err)
	assert.Equal(t, "careertest", db)

	timeout, err := cmd.Flags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, "10s", timeout.String())
}
