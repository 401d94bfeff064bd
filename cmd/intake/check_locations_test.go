package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLocationsCountsLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	doc := `{
		"Maharashtra": {
			"Pune": {"Haveli": ["Wagholi"], "Mulshi": ["Paud"]},
			"Nashik": {"Igatpuri": ["Ghoti"]}
		},
		"Gujarat": {"Surat": {"Olpad": ["Sayan"]}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runCheckLocations(cmd, []string{path}))
	assert.Equal(t, "states: 2\ndistricts: 3\ntalukas: 4\n", out.String())
}

func TestCheckLocationsRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Maharashtra": ["not a map"]}`), 0o644))

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, runCheckLocations(cmd, []string{path}))
}

func TestCheckLocationsMissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, runCheckLocations(cmd, []string{filepath.Join(t.TempDir(), "absent.json")}))
}
