package server

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

const maxTownIDLength = 64

// queryValidate checks decoded query parameters. Field names in errors come
// from the "query" tag so messages match what the caller sent.
var queryValidate = newQueryValidator()

func newQueryValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type distanceQuery struct {
	Path []string `query:"path" validate:"min=1,dive,required,max=64"`
}

type endpointsQuery struct {
	Start string `query:"start" validate:"required,max=64"`
	End   string `query:"end" validate:"required,max=64"`
}

type stopsQuery struct {
	Start string `query:"start" validate:"required,max=64"`
	End   string `query:"end" validate:"required,max=64"`
	Stops int    `validate:"gte=0"`
}

type distanceBoundQuery struct {
	Start       string `query:"start" validate:"required,max=64"`
	End         string `query:"end" validate:"required,max=64"`
	MaxDistance int    `query:"withinDistance" validate:"gte=1"`
}

func parseDistanceQuery(values url.Values) (domain.Path, error) {
	raw := strings.TrimSpace(values.Get("path"))
	if raw == "" {
		return nil, errors.New("path is required")
	}
	q := distanceQuery{Path: strings.Split(raw, ",")}
	for i := range q.Path {
		q.Path[i] = strings.TrimSpace(q.Path[i])
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	path := make(domain.Path, len(q.Path))
	for i, id := range q.Path {
		path[i] = domain.NodeID(id)
	}
	return path, nil
}

func parseEndpoints(values url.Values) endpointsQuery {
	return endpointsQuery{
		Start: strings.TrimSpace(values.Get("start")),
		End:   strings.TrimSpace(values.Get("end")),
	}
}

func parseEndpointsQuery(values url.Values) (endpointsQuery, error) {
	q := parseEndpoints(values)
	if err := validateQuery(q); err != nil {
		return endpointsQuery{}, err
	}
	return q, nil
}

// parseStopsQuery reads start, end and the stop bound named by stopsParam.
func parseStopsQuery(values url.Values, stopsParam string) (stopsQuery, error) {
	ep := parseEndpoints(values)
	q := stopsQuery{Start: ep.Start, End: ep.End}
	stops, err := requiredInt(values, stopsParam)
	if err != nil {
		return stopsQuery{}, err
	}
	q.Stops = stops
	if err := validateQuery(q); err != nil {
		return stopsQuery{}, renameField(err, "Stops", stopsParam)
	}
	return q, nil
}

// parseDistanceBoundQuery accepts withinDistance, or maxDistance as an alias.
func parseDistanceBoundQuery(values url.Values) (distanceBoundQuery, error) {
	ep := parseEndpoints(values)
	q := distanceBoundQuery{Start: ep.Start, End: ep.End}
	param := "withinDistance"
	if values.Get(param) == "" && values.Get("maxDistance") != "" {
		param = "maxDistance"
	}
	bound, err := requiredInt(values, param)
	if err != nil {
		return distanceBoundQuery{}, err
	}
	q.MaxDistance = bound
	if err := validateQuery(q); err != nil {
		return distanceBoundQuery{}, renameField(err, "withinDistance", param)
	}
	return q, nil
}

func requiredInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// validateQuery runs the struct validator and flattens the first failure into
// a caller-facing message.
func validateQuery(q any) error {
	err := queryValidate.Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return describeFieldError(verrs[0])
}

type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string {
	return e.field + " " + e.msg
}

func describeFieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &fieldError{field: field, msg: "is required"}
	case "min":
		return &fieldError{field: field, msg: "must name at least " + fe.Param() + " town"}
	case "max":
		return &fieldError{field: field, msg: fmt.Sprintf("must be at most %d characters", maxTownIDLength)}
	case "gte":
		return &fieldError{field: field, msg: "must be at least " + fe.Param()}
	default:
		return &fieldError{field: field, msg: "is invalid"}
	}
}

func renameField(err error, from, to string) error {
	var fe *fieldError
	if errors.As(err, &fe) && fe.field == from {
		return &fieldError{field: to, msg: fe.msg}
	}
	return err
}
