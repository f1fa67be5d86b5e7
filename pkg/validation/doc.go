// Package validation turns untrusted input into well-formed engine requests.
//
// # Request Bodies
//
// HTTP request bodies are first checked against a JSON schema
// (github.com/xeipuuv/gojsonschema) and then read field by field with
// github.com/tidwall/gjson, so every element of the "array" field can be
// coerced individually:
//
//	req, err := validation.ParseSortRequest(body)
//	if errors.Is(err, validation.ErrInvalidInput) {
//	    // an element could not be coerced to an integer
//	}
//
// # Coercion Rules
//
// Array elements follow the rules of the original web client:
//
//   - JSON numbers are truncated toward zero (5.9 becomes 5)
//   - Strings are trimmed and parsed as base-10 integers ("  7" becomes 7)
//   - Anything else (null, booleans, objects, arrays) is rejected
//
// The trace engine itself assumes well-formed integer input, so all
// coercion happens here.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package validation
