// Package validation partitions a batch of user records into valid and
// invalid ones.
//
// Every record is checked field by field in types.FieldOrder. The first
// field that fails its rule is blamed for the whole record and the remaining
// fields are not evaluated: a record carries at most one failure label.
//
// The rules themselves live in package rules; here they are registered as
// custom tags on a go-playground/validator instance and evaluated through
// Validate.Var, one field at a time.
package validation

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/userinfo-validator/internal/rules"
	"github.com/aanand-mishra/userinfo-validator/internal/types"
)

// Outcome is the verdict for a single record. Field is set only when Valid
// is false and names the first failing field.
type Outcome struct {
	Valid bool
	Field types.FieldName
}

// Result is the partition of a batch. Both slices keep input order.
type Result struct {
	Valid    []types.Record
	Failures []types.FieldName
}

// RecordValidator applies the rule table to records. It holds no
// per-batch state; one instance can validate any number of batches.
type RecordValidator struct {
	v     *validator.Validate
	rules []rules.Rule
	log   *slog.Logger
}

// Option customises a RecordValidator.
type Option func(*RecordValidator)

// WithLogger sets the logger used for per-record debug output.
func WithLogger(l *slog.Logger) Option {
	return func(rv *RecordValidator) {
		if l != nil {
			rv.log = l
		}
	}
}

// New returns a RecordValidator with every entry of rules.Table registered.
func New(opts ...Option) (*RecordValidator, error) {
	rv := &RecordValidator{
		v:     validator.New(),
		rules: rules.Table,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(rv)
	}

	for _, r := range rv.rules {
		check := r.Check
		err := rv.v.RegisterValidation(r.Tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return nil, fmt.Errorf("validation.New: register %q: %w", r.Tag, err)
		}
	}

	return rv, nil
}

// MustNew is like New but panics if a rule cannot be registered.
func MustNew(opts ...Option) *RecordValidator {
	rv, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return rv
}

// Check evaluates the rules against rec in FieldOrder and stops at the
// first failure.
func (rv *RecordValidator) Check(rec types.Record) Outcome {
	out, _ := rv.check(rec)
	return out
}

func (rv *RecordValidator) check(rec types.Record) (Outcome, validator.FieldError) {
	for _, r := range rv.rules {
		err := rv.v.Var(rec.Value(r.Field), r.Tag)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Outcome{Field: r.Field}, fieldErrs[0]
		}
		return Outcome{Field: r.Field}, nil
	}
	return Outcome{Valid: true}, nil
}

// Validate builds a Record from every raw mapping and partitions them.
//
// Construction happens for the whole batch before any rule runs: a raw
// record missing a key aborts the batch and the returned error wraps the
// *types.MissingFieldError.
func (rv *RecordValidator) Validate(raw []map[string]any) (Result, error) {
	records := make([]types.Record, 0, len(raw))
	for i, m := range raw {
		rec, err := types.NewRecord(m)
		if err != nil {
			return Result{}, fmt.Errorf("validation.Validate: record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return rv.ValidateRecords(records), nil
}

// ValidateRecords partitions already-built records.
func (rv *RecordValidator) ValidateRecords(records []types.Record) Result {
	res := Result{
		Valid:    make([]types.Record, 0, len(records)),
		Failures: make([]types.FieldName, 0),
	}

	for i, rec := range records {
		out, fe := rv.check(rec)
		if out.Valid {
			res.Valid = append(res.Valid, rec)
			continue
		}

		res.Failures = append(res.Failures, out.Field)
		rv.log.Debug("record rejected",
			slog.Int("index", i),
			slog.String("field", string(out.Field)),
			slog.String("reason", describe(out.Field, fe)),
		)
	}

	rv.log.Info("batch validated",
		slog.Int("records", len(records)),
		slog.Int("valid", len(res.Valid)),
		slog.Int("invalid", len(res.Failures)),
	)

	return res
}
