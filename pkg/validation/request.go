package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrInvalidInput is returned when an array element cannot be coerced to an integer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRequest is returned when a request body does not match its schema.
	ErrInvalidRequest = errors.New("invalid request")
)

// InputError describes one element that could not be coerced.
type InputError struct {
	Index     int       // Position of the element in the array
	Value     string    // Raw element text
	Reason    string    // Human-readable reason for rejection
	Timestamp time.Time // When the validation error occurred
}

// Error implements the error interface.
//
// Format: "invalid input: element {Index} ({Value}): {Reason}"
func (e *InputError) Error() string {
	return fmt.Sprintf("%v: element %d (%s): %s", ErrInvalidInput, e.Index, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// SortRequest is the validated body of a sort request.
type SortRequest struct {
	Algorithm string
	Values    []int
}

// GenerateRequest is the validated body of an array-generation request.
type GenerateRequest struct {
	Size int
	Mode string
}

const sortRequestSchema = `{
	"type": "object",
	"properties": {
		"algorithm": {"type": "string"},
		"array": {
			"type": "array",
			"items": {"type": ["number", "string"]}
		}
	},
	"required": ["algorithm", "array"]
}`

const generateRequestSchema = `{
	"type": "object",
	"properties": {
		"size": {"type": "integer", "minimum": 0},
		"type": {"type": "string"}
	}
}`

var (
	sortSchema     = mustSchema(sortRequestSchema)
	generateSchema = mustSchema(generateRequestSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return schema
}

// ParseSortRequest validates body as {"algorithm": string, "array": [...]}
// and coerces every array element to an integer.
func ParseSortRequest(body []byte) (SortRequest, error) {
	if err := validateAgainst(sortSchema, body); err != nil {
		return SortRequest{}, err
	}

	values, err := CoerceJSONArray(gjson.GetBytes(body, "array"))
	if err != nil {
		return SortRequest{}, err
	}

	return SortRequest{
		Algorithm: gjson.GetBytes(body, "algorithm").String(),
		Values:    values,
	}, nil
}

// ParseGenerateRequest validates body as {"size": int, "type": string}.
// Missing fields take defaultSize and "random".
func ParseGenerateRequest(body []byte, defaultSize int) (GenerateRequest, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	if err := validateAgainst(generateSchema, body); err != nil {
		return GenerateRequest{}, err
	}

	req := GenerateRequest{Size: defaultSize, Mode: "random"}
	if size := gjson.GetBytes(body, "size"); size.Exists() {
		req.Size = int(size.Int())
	}
	if mode := gjson.GetBytes(body, "type"); mode.Exists() {
		req.Mode = mode.String()
	}
	return req, nil
}

// CoerceJSONArray converts every element of a gjson array to an integer.
func CoerceJSONArray(arr gjson.Result) ([]int, error) {
	if !arr.IsArray() {
		return nil, fmt.Errorf("%w: expected an array", ErrInvalidInput)
	}

	elems := arr.Array()
	values := make([]int, len(elems))
	for i, elem := range elems {
		v, err := coerceElement(i, elem)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// CoerceStrings converts command-line arguments to integers. A single
// argument may also hold a comma-separated list ("5,2,9").
func CoerceStrings(args []string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := parseInt(len(values), field)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func coerceElement(i int, elem gjson.Result) (int, error) {
	switch elem.Type {
	case gjson.Number:
		f := elem.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
			return 0, &InputError{Index: i, Value: elem.Raw, Reason: "number out of range", Timestamp: time.Now()}
		}
		return int(math.Trunc(f)), nil
	case gjson.String:
		return parseInt(i, elem.String())
	default:
		return 0, &InputError{Index: i, Value: elem.Raw, Reason: "not a number or numeric string", Timestamp: time.Now()}
	}
}

func parseInt(i int, s string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, &InputError{Index: i, Value: strconv.Quote(s), Reason: "not an integer", Timestamp: time.Now()}
	}
	return int(v), nil
}

func validateAgainst(schema *gojsonschema.Schema, body []byte) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: body is not valid JSON", ErrInvalidRequest)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
	}

	return nil
}
