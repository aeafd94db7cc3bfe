// Package validation provides the response assertion engine of the harness:
// status, field, array, and JSON Schema checks over an already-obtained
// response or decoded JSON value. All checks are single-shot and
// deterministic; failures are returned as *CheckError and never retried or
// masked here.
package validation

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/apiharness/rest-contract-tests/apiclient"
	"github.com/apiharness/rest-contract-tests/framework"
)

// SchemaDocument is an externally supplied JSON Schema, kept as opaque raw
// bytes. The validator never inspects or mutates it beyond handing it to the
// schema engine.
type SchemaDocument []byte

// Validator performs assertions over responses and decoded JSON values. It
// holds no state other than the logger it reports outcomes through.
type Validator struct {
	logger framework.Logger
}

func New(logger framework.Logger) *Validator {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Validator{logger: logger}
}

// AssertStatus checks the response status code against the expected value.
// The failure message includes the raw response body, since the body usually
// says why the service answered the way it did.
func (v *Validator) AssertStatus(resp apiclient.Response, expected int) error {
	if resp.StatusCode != expected {
		return failf(AssertionFailed, "expected status %d, but got %d. Response: %s",
			expected, resp.StatusCode, resp.BodyText)
	}
	v.logger.Infof("Status code validation passed: %d", expected)
	return nil
}

// ParseJSON decodes the response body. Numbers are kept as json.Number so
// integer and floating-point values stay distinguishable for type checks.
func (v *Validator) ParseJSON(resp apiclient.Response) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(resp.BodyText))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil || dec.More() {
		v.logger.Errorf("Failed to parse JSON response")
		return nil, failf(MalformedBody, "response is not valid JSON: %s", resp.BodyText)
	}
	v.logger.Debugf("Successfully parsed JSON response")
	return value, nil
}

// ValidateSchema runs the value through the JSON Schema engine. A
// non-conforming value yields a SchemaViolation failure carrying the
// engine's own description; an unloadable schema is an ordinary error, not
// a check failure.
func (v *Validator) ValidateSchema(value interface{}, schema SchemaDocument) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(value),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		var descs []string
		for _, re := range result.Errors() {
			descs = append(descs, re.String())
		}
		message := strings.Join(descs, "; ")
		v.logger.Errorf("Schema validation failed: %s", message)
		return failf(SchemaViolation, "schema violation: %s", message)
	}
	v.logger.Infof("Schema validation passed")
	return nil
}

// AssertFieldExists checks that the object has the given key.
func (v *Validator) AssertFieldExists(obj map[string]interface{}, field string) error {
	if _, ok := obj[field]; !ok {
		return failf(FieldMissing, "field %q not found in response", field)
	}
	v.logger.Debugf("Field %q exists in response", field)
	return nil
}

// AssertFieldEquals checks that the field exists and holds the expected
// value. Numbers compare by numeric value regardless of how they were
// decoded.
func (v *Validator) AssertFieldEquals(obj map[string]interface{}, field string, expected interface{}) error {
	if err := v.AssertFieldExists(obj, field); err != nil {
		return err
	}
	actual := obj[field]
	if !jsonValueEqual(actual, expected) {
		return failf(FieldMismatch, "field %q: expected '%v', but got '%v'", field, expected, actual)
	}
	v.logger.Infof("Field %q has expected value: %v", field, expected)
	return nil
}

// AssertFieldType checks that the field exists and that its value has the
// expected semantic kind. A string holding "1" is not an integer.
func (v *Validator) AssertFieldType(obj map[string]interface{}, field string, expected Kind) error {
	if err := v.AssertFieldExists(obj, field); err != nil {
		return err
	}
	actual := KindOf(obj[field])
	if actual != expected {
		return failf(TypeMismatch, "field %q: expected type %s, but got %s", field, expected, actual)
	}
	v.logger.Debugf("Field %q has expected type: %s", field, expected)
	return nil
}

// AssertNonEmptyArray checks that the value is an array with at least one
// element.
func (v *Validator) AssertNonEmptyArray(value interface{}) error {
	arr, err := v.requireArray(value)
	if err != nil {
		return err
	}
	if len(arr) == 0 {
		return failf(EmptyList, "expected non-empty list, but got empty list")
	}
	v.logger.Infof("Response is a non-empty list with %d items", len(arr))
	return nil
}

// AssertArrayLength checks that the value is an array with exactly the
// expected number of elements.
func (v *Validator) AssertArrayLength(value interface{}, expectedLength int) error {
	arr, err := v.requireArray(value)
	if err != nil {
		return err
	}
	if len(arr) != expectedLength {
		return failf(LengthMismatch, "expected list length %d, but got %d", expectedLength, len(arr))
	}
	v.logger.Infof("List has expected length: %d", expectedLength)
	return nil
}

func (v *Validator) requireArray(value interface{}) ([]interface{}, error) {
	arr, ok := value.([]interface{})
	if !ok {
		return nil, failf(NotAList, "expected list, but got %s", KindOf(value))
	}
	return arr, nil
}

func jsonValueEqual(a, b interface{}) bool {
	if fa, ok := numericValue(a); ok {
		fb, ok := numericValue(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func numericValue(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
