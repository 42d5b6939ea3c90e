// Package query turns raw filter input into a model.Query and back into the
// query string understood by the scoring endpoint.
package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"mvp-board/internal/model"

	"github.com/go-playground/validator/v10"
)

const (
	ParamYear             = "year"
	ParamLowerPoints      = "lwr_points"
	ParamLowerEfg         = "lwr_efg"
	ParamLowerGamesPlayed = "lwr_gs"
)

// Fields holds the four filter values exactly as the user typed them.
type Fields struct {
	Year             string
	LowerPoints      string
	LowerEfg         string
	LowerGamesPlayed string
}

// FieldsFromQuery returns the raw form values for q.
func FieldsFromQuery(q model.Query) Fields {
	return Fields{
		Year:             q.Year,
		LowerPoints:      formatNumber(q.LowerPoints),
		LowerEfg:         formatNumber(q.LowerEfg),
		LowerGamesPlayed: formatNumber(q.LowerGamesPlayed),
	}
}

// ValidationError reports a required field left empty.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Build validates fields and returns the resulting Query. Only an empty year
// is rejected; numeric fields that are blank, malformed, non-finite or
// negative silently take their defaults.
func Build(fields Fields) (model.Query, error) {
	q := model.Query{
		Year:             strings.TrimSpace(fields.Year),
		LowerPoints:      parseNumber(fields.LowerPoints, model.DefaultLowerPoints),
		LowerEfg:         parseNumber(fields.LowerEfg, model.DefaultLowerEfg),
		LowerGamesPlayed: parseNumber(fields.LowerGamesPlayed, model.DefaultLowerGamesPlayed),
	}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return model.Query{}, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			}
		}
		return model.Query{}, fmt.Errorf("validate query: %w", err)
	}
	return q, nil
}

// Serialize encodes q in the parameter order the scoring endpoint documents.
func Serialize(q model.Query) string {
	var b strings.Builder
	b.WriteString(ParamYear + "=" + url.QueryEscape(q.Year))
	b.WriteString("&" + ParamLowerPoints + "=" + url.QueryEscape(formatNumber(q.LowerPoints)))
	b.WriteString("&" + ParamLowerEfg + "=" + url.QueryEscape(formatNumber(q.LowerEfg)))
	b.WriteString("&" + ParamLowerGamesPlayed + "=" + url.QueryEscape(formatNumber(q.LowerGamesPlayed)))
	return b.String()
}

// Parse rebuilds a Query from URL parameters produced by Serialize.
func Parse(values url.Values) (model.Query, error) {
	return Build(Fields{
		Year:             values.Get(ParamYear),
		LowerPoints:      values.Get(ParamLowerPoints),
		LowerEfg:         values.Get(ParamLowerEfg),
		LowerGamesPlayed: values.Get(ParamLowerGamesPlayed),
	})
}

func parseNumber(raw string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fallback
	}
	return value
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
