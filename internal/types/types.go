// Package types holds the data model shared across the application: the
// Record value, the FieldName labels and their fixed evaluation order.
// Keeping them in one place prevents import cycles: rules, validation,
// report and storage all import types without depending on each other.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldName labels one of the nine record fields. The label doubles as the
// record's JSON key in the input data and as the failure label in summaries.
type FieldName string

const (
	FieldTelephone      FieldName = "telephone"
	FieldHeight         FieldName = "height"
	FieldNationalID     FieldName = "snils"
	FieldPassportSeries FieldName = "passport_series"
	FieldInstitution    FieldName = "university"
	FieldAge            FieldName = "age"
	FieldAcademicDegree FieldName = "academic_degree"
	FieldWorldview      FieldName = "worldview"
	FieldAddress        FieldName = "address"
)

// FieldOrder is the order in which fields are evaluated. When several fields
// of a record are invalid, the earliest one in this order takes the blame.
var FieldOrder = [...]FieldName{
	FieldTelephone,
	FieldHeight,
	FieldNationalID,
	FieldPassportSeries,
	FieldInstitution,
	FieldAge,
	FieldAcademicDegree,
	FieldWorldview,
	FieldAddress,
}

// MissingFieldError reports a raw record that lacks one of the nine keys.
// It is structural: the whole batch is rejected when it occurs.
type MissingFieldError struct {
	Field FieldName
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record is missing required field %q", string(e.Field))
}

// Record is one user's information entry.
//
// The json:"..." tags match the keys of the input files, so a slice of
// Records encodes to the same shape it was read from.
type Record struct {
	Telephone      string `json:"telephone"`
	Height         string `json:"height"`
	NationalID     string `json:"snils"`
	PassportSeries string `json:"passport_series"`
	Institution    string `json:"university"`
	Age            string `json:"age"`
	AcademicDegree string `json:"academic_degree"`
	Worldview      string `json:"worldview"`
	Address        string `json:"address"`
}

// NewRecord builds a Record from an untyped key-value mapping, such as one
// element of a decoded JSON array. Every key in FieldOrder must be present;
// the first absent one (in FieldOrder) is returned as a *MissingFieldError.
// Non-string values are coerced with Stringify.
func NewRecord(raw map[string]any) (Record, error) {
	var values [len(FieldOrder)]string
	for i, field := range FieldOrder {
		v, ok := raw[string(field)]
		if !ok {
			return Record{}, &MissingFieldError{Field: field}
		}
		values[i] = Stringify(v)
	}

	return Record{
		Telephone:      values[0],
		Height:         values[1],
		NationalID:     values[2],
		PassportSeries: values[3],
		Institution:    values[4],
		Age:            values[5],
		AcademicDegree: values[6],
		Worldview:      values[7],
		Address:        values[8],
	}, nil
}

// Value returns the field labelled by name, or "" for an unknown label.
func (r Record) Value(name FieldName) string {
	switch name {
	case FieldTelephone:
		return r.Telephone
	case FieldHeight:
		return r.Height
	case FieldNationalID:
		return r.NationalID
	case FieldPassportSeries:
		return r.PassportSeries
	case FieldInstitution:
		return r.Institution
	case FieldAge:
		return r.Age
	case FieldAcademicDegree:
		return r.AcademicDegree
	case FieldWorldview:
		return r.Worldview
	case FieldAddress:
		return r.Address
	default:
		return ""
	}
}

// Raw converts the record back into the mapping form NewRecord accepts.
func (r Record) Raw() map[string]any {
	raw := make(map[string]any, len(FieldOrder))
	for _, field := range FieldOrder {
		raw[string(field)] = r.Value(field)
	}
	return raw
}

// Stringify coerces a raw field value to the string the rules are applied
// to. Numbers come out the way the data files' authors wrote them for the
// common cases: 1.8 -> "1.8", 45 -> "45".
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		s := val.String()
		if !strings.ContainsAny(s, ".eE") {
			return s
		}
		f, err := val.Float64()
		if err != nil {
			return s
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
