// Package jsonfile provides a file-backed implementation of the
// storage.Storage interface.
//
// Records are read from a JSON array of objects and valid records are
// written back as a JSON array, both in a configurable charset. The data
// files this tool was built for are windows-1251, so that is the default;
// charset names are resolved through golang.org/x/text/encoding/htmlindex,
// which accepts every label the WHATWG encoding standard knows
// ("windows-1251", "cp1251", "utf-8", "koi8-r", ...).
package jsonfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/aanand-mishra/userinfo-validator/internal/config"
	"github.com/aanand-mishra/userinfo-validator/internal/types"
)

// JSONFile reads records from InputPath and writes valid ones to OutputPath.
type JSONFile struct {
	InputPath  string
	OutputPath string
	Charset    encoding.Encoding
}

// New resolves the configured charset and returns a ready-to-use *JSONFile.
func New(cfg *config.Config) (*JSONFile, error) {
	enc, err := htmlindex.Get(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("jsonfile.New: charset %q: %w", cfg.Encoding, err)
	}

	return &JSONFile{
		InputPath:  cfg.InputFile,
		OutputPath: cfg.ValidFile,
		Charset:    enc,
	}, nil
}

// ReadRecords decodes the input file as a JSON array of objects. Numbers are
// kept as json.Number so they reach the rules exactly as written.
func (j *JSONFile) ReadRecords() ([]map[string]any, error) {
	f, err := os.Open(j.InputPath)
	if err != nil {
		return nil, fmt.Errorf("ReadRecords: open %s: %w", j.InputPath, err)
	}
	defer f.Close()

	return decode(j.Charset.NewDecoder().Reader(f), j.InputPath)
}

func decode(r io.Reader, name string) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("ReadRecords: decode %s: %w", name, err)
	}

	if records == nil {
		records = make([]map[string]any, 0)
	}
	return records, nil
}

// WriteRecords encodes records as an indented JSON array in the configured
// charset. A character the charset cannot represent is an error.
func (j *JSONFile) WriteRecords(records []types.Record) (err error) {
	f, err := os.Create(j.OutputPath)
	if err != nil {
		return fmt.Errorf("WriteRecords: create %s: %w", j.OutputPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("WriteRecords: close %s: %w", j.OutputPath, cerr)
		}
	}()

	w := j.Charset.NewEncoder().Writer(f)
	if err := encode(w, records); err != nil {
		return fmt.Errorf("WriteRecords: %s: %w", j.OutputPath, err)
	}
	return nil
}

func encode(w io.Writer, records []types.Record) error {
	// [] rather than null for an empty result.
	if records == nil {
		records = make([]types.Record, 0)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(records)
}
