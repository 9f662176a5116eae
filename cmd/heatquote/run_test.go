package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/norms"
)

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "house.yaml")
	var out bytes.Buffer
	require.NoError(t, runInit(&out, path, false))
	assert.Equal(t, path+"\n", out.String())
	return path
}

func writeDocument(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := writeExample(t)

	err := runInit(&bytes.Buffer{}, path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, runInit(&bytes.Buffer{}, path, true))
}

func TestEstimate_Text(t *testing.T) {
	path := writeExample(t)

	var out bytes.Buffer
	require.NoError(t, runEstimate(&out, zap.NewNop(), path, estimateOptions{}))

	text := out.String()
	for _, expected := range []string{"Коллектор К1", "Отопительный прибор (Гостиная)", "Пусконаладочные работы", "Итого:"} {
		assert.Contains(t, text, expected)
	}
}

func TestEstimate_JSONAndCommissioningOverride(t *testing.T) {
	path := writeExample(t)

	decode := func(opts estimateOptions) estimate.Summary {
		var out bytes.Buffer
		opts.json = true
		require.NoError(t, runEstimate(&out, zap.NewNop(), path, opts))
		var sum estimate.Summary
		require.NoError(t, json.Unmarshal(out.Bytes(), &sum))
		return sum
	}

	with := decode(estimateOptions{})
	assert.True(t, with.CommissioningIncluded)

	off := false
	without := decode(estimateOptions{commissioning: &off})
	assert.False(t, without.CommissioningIncluded)
	assert.InDelta(t, with.Commissioning.Hours, with.Total.Hours-without.Total.Hours, 1e-9)
}

func TestEstimate_Plan(t *testing.T) {
	path := writeExample(t)

	var out bytes.Buffer
	require.NoError(t, runEstimate(&out, zap.NewNop(), path, estimateOptions{plan: true}))
	assert.Contains(t, out.String(), "Шаг 5.")
	assert.Contains(t, out.String(), "Всего:")
}

func TestEstimate_BadDocument(t *testing.T) {
	path := writeDocument(t, "systems:\n  - hubs:\n      - mode: ring\n")

	err := runEstimate(&bytes.Buffer{}, zap.NewNop(), path, estimateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hub mode")

	err = runEstimate(&bytes.Buffer{}, zap.NewNop(), filepath.Join(t.TempDir(), "missing.yaml"), estimateOptions{})
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	path := writeExample(t)

	cases := map[string]string{"pdf": "%PDF-", "xlsx": "PK"}
	for format, magic := range cases {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runExport(&out, zap.NewNop(), path, format, ""))

			want := filepath.Join(filepath.Dir(path), "house."+format)
			assert.Equal(t, want+"\n", out.String())
			data, err := os.ReadFile(want)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte(magic)))
		})
	}

	err := runExport(&bytes.Buffer{}, zap.NewNop(), path, "docx", "")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidate(&out, zap.NewNop(), writeExample(t)))
	assert.Equal(t, "OK: 1 систем, 1 узлов, 1 приборов\n", out.String())

	doc := "project:\n" +
		"  title: Дом\n" +
		"  hourly_rates: {expert: 2000, master: 1500, assistant: 1000}\n" +
		"  factors: {wall: adobe, congestion: none, distance_km: 0}\n" +
		"systems:\n" +
		"  - name: Отопление\n" +
		"    hubs:\n" +
		"      - name: К1\n" +
		"        mode: manifold\n" +
		"        outputs: 4\n" +
		"units: []\n"
	out.Reset()
	err := runValidate(&out, zap.NewNop(), writeDocument(t, doc))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out.String(), `wall = "adobe"`)
	assert.Contains(t, out.String(), "[connection_points]")
}

func TestNorms(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runNorms(&out))

	var table norms.Table
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &table))
	assert.Equal(t, *norms.Standard(), table)
}
