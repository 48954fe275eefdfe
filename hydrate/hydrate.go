// Package hydrate turns raw, untrusted data into validated, independently
// owned typed values, and produces storage/wire-ready snapshots of live ones.
//
// Hydration either yields a value whose schema check passes or fails with
// every violation enumerated; there is no partial hydration. The decoded
// value never aliases the input, so later mutation of the raw data cannot
// leak into a hydrated instance.
package hydrate

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"tabletop/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Hydrate decodes raw into a fresh T and validates its schema tags.
func Hydrate[T any](raw any) (*T, error) {
	return hydrate[T](raw, false)
}

// HydrateStrict is Hydrate but also rejects keys in raw that have no home
// in T. Used for config payloads, where a stray key is a caller mistake
// rather than forward-compatible extra data.
func HydrateStrict[T any](raw any) (*T, error) {
	return hydrate[T](raw, true)
}

func hydrate[T any](raw any, strict bool) (*T, error) {
	out := new(T)
	if err := decode(raw, out, strict); err != nil {
		return nil, err
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(raw, out any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "json",
		Squash:      true,
		ErrorUnused: strict,
		DecodeHook:  mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
	})
	if err != nil {
		return errs.Wrap(err, errs.Configuration, "building decoder")
	}
	if err := dec.Decode(raw); err != nil {
		// mapstructure accumulates every field error before returning
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			return errs.New(errs.Validation, "schema check failed").
				WithMeta("violations", merr.Errors)
		}
		return errs.Wrap(err, errs.Validation, "schema check failed")
	}
	return nil
}

// Validate checks a typed value against its schema tags. On failure the
// returned error's metadata lists every violated field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]string, len(verrs))
		for i, fe := range verrs {
			violations[i] = fe.Namespace() + " failed on the '" + fe.Tag() + "' tag"
		}
		return errs.New(errs.Validation, "schema check failed").
			WithMeta("violations", violations)
	}
	return errs.Wrap(err, errs.Validation, "schema check failed")
}

// Dehydrate produces a deep, independent snapshot of v suitable for wire
// transport or storage. Mutating v afterwards never affects a snapshot
// taken earlier, and vice versa.
func Dehydrate(v any) (map[string]any, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(err, errs.Configuration, "dehydrating value")
	}
	var out map[string]any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, errs.Wrap(err, errs.Configuration, "dehydrating value")
	}
	return out, nil
}
