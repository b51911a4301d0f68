// Package metadata validates the free-form metadata document attached to an
// inventory item. Only the required fields are checked and coerced; every
// other key is passed through untouched.
package metadata

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	FieldYear                 = "year"
	FieldActors               = "actors"
	FieldImdbRating           = "imdb_rating"
	FieldRottenTomatoesRating = "rotten_tomatoes_rating"
)

const (
	msgRequired   = "field required"
	msgNotInteger = "value is not a valid integer"
	msgNotDecimal = "value is not a valid decimal"
	msgNotList    = "value is not a valid list"
	msgNotString  = "str type expected"
	msgNotObject  = "value is not a valid dict"
)

// Normalize decodes raw as a JSON object, validates it and re-encodes the
// normalized document. Numbers outside the required fields keep their
// original textual form.
func Normalize(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, model.Invalid("__root__", msgRequired)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, model.Invalid("__root__", msgNotObject)
	}

	normalized, err := Validate(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// Validate checks the required fields of doc and returns a copy in which
// those fields hold their coerced values. doc itself is not modified.
func Validate(doc map[string]interface{}) (map[string]interface{}, error) {
	ve := model.NewValidationError()
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	for _, field := range []string{FieldYear, FieldRottenTomatoesRating} {
		v, ok := doc[field]
		if !ok {
			ve.Add(field, msgRequired)
			continue
		}
		n, ok := toInteger(v)
		if !ok {
			ve.Add(field, msgNotInteger)
			continue
		}
		out[field] = n
	}

	if v, ok := doc[FieldImdbRating]; !ok {
		ve.Add(FieldImdbRating, msgRequired)
	} else if d, ok := toDecimal(v); !ok {
		ve.Add(FieldImdbRating, msgNotDecimal)
	} else {
		out[FieldImdbRating] = json.Number(d.String())
	}

	if v, ok := doc[FieldActors]; !ok {
		ve.Add(FieldActors, msgRequired)
	} else if actors, msg := toStrings(v); msg != "" {
		ve.Add(FieldActors, msg)
	} else {
		out[FieldActors] = actors
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}
}

func toInteger(v interface{}) (int64, bool) {
	d, ok := toDecimal(v)
	if !ok || !d.IsInteger() || !d.BigInt().IsInt64() {
		return 0, false
	}
	return d.IntPart(), true
}

func toStrings(v interface{}) ([]string, string) {
	switch list := v.(type) {
	case []string:
		return list, ""
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, msgNotString
			}
			out = append(out, s)
		}
		return out, ""
	default:
		return nil, msgNotList
	}
}
