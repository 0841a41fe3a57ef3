package jsonfile_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/aanand-mishra/userinfo-validator/internal/config"
	"github.com/aanand-mishra/userinfo-validator/internal/storage"
	"github.com/aanand-mishra/userinfo-validator/internal/storage/jsonfile"
	"github.com/aanand-mishra/userinfo-validator/internal/types"
)

var _ storage.Storage = (*jsonfile.JSONFile)(nil)

const sample = `[
    {
        "telephone": "+7-(123)-456-78-90",
        "height": 1.80,
        "snils": "12345678901",
        "passport_series": "45 12",
        "university": "Самарский университет",
        "age": 30,
        "academic_degree": "Магистр",
        "worldview": "Буддизм",
        "address": "ул. Ленина 5"
    }
]`

func newStore(t *testing.T, encoding string) (*jsonfile.JSONFile, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		InputFile: filepath.Join(dir, "input.txt"),
		ValidFile: filepath.Join(dir, "correct_data.txt"),
		Encoding:  encoding,
	}
	store, err := jsonfile.New(cfg)
	require.NoError(t, err)
	return store, cfg
}

func TestNew(t *testing.T) {
	_, err := jsonfile.New(&config.Config{Encoding: "no-such-charset"})
	assert.Error(t, err)
}

func TestReadRecords(t *testing.T) {
	t.Run("windows-1251 input", func(t *testing.T) {
		store, cfg := newStore(t, "windows-1251")

		encoded, err := charmap.Windows1251.NewEncoder().String(sample)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(cfg.InputFile, []byte(encoded), 0o644))

		raw, err := store.ReadRecords()
		require.NoError(t, err)
		require.Len(t, raw, 1)

		assert.Equal(t, "Самарский университет", raw[0]["university"])
		assert.Equal(t, json.Number("1.80"), raw[0]["height"])

		rec, err := types.NewRecord(raw[0])
		require.NoError(t, err)
		assert.Equal(t, "1.8", rec.Height)
		assert.Equal(t, "30", rec.Age)
	})

	t.Run("utf-8 input", func(t *testing.T) {
		store, cfg := newStore(t, "utf-8")
		require.NoError(t, os.WriteFile(cfg.InputFile, []byte(sample), 0o644))

		raw, err := store.ReadRecords()
		require.NoError(t, err)
		require.Len(t, raw, 1)
		assert.Equal(t, "Буддизм", raw[0]["worldview"])
	})

	t.Run("missing file", func(t *testing.T) {
		store, _ := newStore(t, "utf-8")
		_, err := store.ReadRecords()
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		store, cfg := newStore(t, "utf-8")
		require.NoError(t, os.WriteFile(cfg.InputFile, []byte(`{"telephone":`), 0o644))

		_, err := store.ReadRecords()
		assert.Error(t, err)
	})

	t.Run("null is an empty batch", func(t *testing.T) {
		store, cfg := newStore(t, "utf-8")
		require.NoError(t, os.WriteFile(cfg.InputFile, []byte(`null`), 0o644))

		raw, err := store.ReadRecords()
		require.NoError(t, err)
		assert.NotNil(t, raw)
		assert.Empty(t, raw)
	})
}

func TestWriteRecords(t *testing.T) {
	rec := types.Record{
		Telephone:      "+7-(123)-456-78-90",
		Height:         "1.80",
		NationalID:     "12345678901",
		PassportSeries: "45 12",
		Institution:    "Самарский университет",
		Age:            "30",
		AcademicDegree: "Магистр",
		Worldview:      "Буддизм",
		Address:        "ул. Ленина 5",
	}

	t.Run("windows-1251 round trip", func(t *testing.T) {
		store, cfg := newStore(t, "windows-1251")
		require.NoError(t, store.WriteRecords([]types.Record{rec}))

		data, err := os.ReadFile(cfg.ValidFile)
		require.NoError(t, err)

		decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
		require.NoError(t, err)
		assert.Contains(t, string(decoded), `"university": "Самарский университет"`)
		assert.Contains(t, string(decoded), "\n    {\n        \"telephone\"")

		var got []types.Record
		require.NoError(t, json.Unmarshal(decoded, &got))
		assert.Equal(t, []types.Record{rec}, got)
	})

	t.Run("read back through the store", func(t *testing.T) {
		store, cfg := newStore(t, "windows-1251")
		require.NoError(t, store.WriteRecords([]types.Record{rec}))

		cfg.InputFile = cfg.ValidFile
		reader, err := jsonfile.New(cfg)
		require.NoError(t, err)

		raw, err := reader.ReadRecords()
		require.NoError(t, err)
		require.Len(t, raw, 1)

		again, err := types.NewRecord(raw[0])
		require.NoError(t, err)
		assert.Equal(t, rec, again)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		store, cfg := newStore(t, "windows-1251")
		require.NoError(t, store.WriteRecords(nil))

		data, err := os.ReadFile(cfg.ValidFile)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("unencodable character", func(t *testing.T) {
		store, _ := newStore(t, "windows-1251")
		bad := rec
		bad.Address = "ул. 東京 5"

		assert.Error(t, store.WriteRecords([]types.Record{bad}))
	})
}
