package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"retailpulse/backend/internal/domain"
)

func execute(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return &out, cmd.Execute()
}

func TestSingleStoreJSONIsReproducible(t *testing.T) {
	args := []string{"--store", "chennai", "--seed", "42", "--date", "2026-03-14", "--timezone", "UTC", "--log-level", "error"}

	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())

	var data domain.StoreData
	require.NoError(t, json.Unmarshal(first.Bytes(), &data))
	assert.Equal(t, domain.StoreChennai, data.StoreID)
	assert.Len(t, data.SalesHistory, 30)
	assert.Equal(t, "2026-03-14", data.SalesHistory[len(data.SalesHistory)-1].Date)
}

func TestAllStoresYAMLToStdout(t *testing.T) {
	out, err := execute(t, "--format", "yaml", "--seed", "5", "--date", "2026-03-14", "--timezone", "UTC", "--order-count", "3")
	require.NoError(t, err)

	var records []domain.StoreData
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 3)
	for i, id := range domain.AllStores() {
		assert.Equal(t, id, records[i].StoreID)
		assert.Len(t, records[i].RecentOrders, 3)
	}
}

func TestOutDirectoryWritesOneFilePerStore(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--out", dir, "--seed", "9", "--date", "2026-03-14", "--timezone", "UTC", "--log-level", "error")
	require.NoError(t, err)

	for _, name := range []string{"beelittle-tirupur-analytics.json", "beelittle-coimbatore-analytics.json", "beelittle-chennai-analytics.json"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(raw), "\"salesHistory\"")
	}
}

func TestRejectsBadInput(t *testing.T) {
	_, err := execute(t, "--store", "Madurai")
	assert.ErrorContains(t, err, "unknown store")

	_, err = execute(t, "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "--date", "14-03-2026", "--timezone", "UTC")
	assert.ErrorContains(t, err, "parse date")

	_, err = execute(t, "--sku-count", "-1")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "datagen version "+Version)
}
