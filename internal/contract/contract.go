package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// SignupPath is the path of the signup operation in the document.
const SignupPath = "/newsletter-signup"

//go:embed openapi.yaml
var document []byte

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

var missingProperty = regexp.MustCompile(`property "([^"]+)" is missing`)

// fieldOrder keeps messages in form order.
var fieldOrder = map[string]int{"name": 0, "email": 1, "country": 2, "region": 3}

// Contract validates signup request bodies against the embedded OpenAPI
// document.
type Contract struct {
	doc    *openapi3.T
	schema *openapi3.Schema
}

// Raw returns the embedded OpenAPI document.
func Raw() []byte {
	return append([]byte(nil), document...)
}

// Default loads the embedded document once per process.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), document)
	})
	return defaultContract, defaultErr
}

// Load parses and validates an OpenAPI document that declares the signup
// operation with a JSON request body.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	if doc.Paths == nil {
		return nil, errors.New("contract: document does not contain any paths")
	}
	item := doc.Paths.Value(SignupPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: missing POST %s", SignupPath)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no request body", SignupPath)
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no JSON schema", SignupPath)
	}
	return &Contract{doc: doc, schema: media.Schema.Value}, nil
}

// Document exposes the parsed document.
func (c *Contract) Document() *openapi3.T { return c.doc }

// Validate checks a raw request body and returns user-facing messages, one
// per offending field. A valid body yields nil.
func (c *Contract) Validate(body []byte) []string {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return []string{"Request body must be a JSON object"}
	}
	if _, ok := value.(map[string]any); !ok {
		return []string{"Request body must be a JSON object"}
	}

	err := c.schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var problems []problem
	collect(err, &problems)
	sort.SliceStable(problems, func(i, j int) bool {
		return rank(problems[i].field) < rank(problems[j].field)
	})

	out := make([]string, 0, len(problems))
	seen := make(map[string]struct{}, len(problems))
	for _, p := range problems {
		if _, ok := seen[p.message]; ok {
			continue
		}
		seen[p.message] = struct{}{}
		out = append(out, p.message)
	}
	return out
}

type problem struct {
	field   string
	message string
}

func collect(err error, out *[]problem) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collect(inner, out)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		*out = append(*out, problem{message: err.Error()})
		return
	}

	field := ""
	if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
		field = pointer[len(pointer)-1]
	}
	switch schemaErr.SchemaField {
	case "required":
		if m := missingProperty.FindStringSubmatch(schemaErr.Reason); m != nil {
			field = m[1]
		}
		*out = append(*out, problem{field: field, message: label(field) + " is required"})
	case "pattern", "minLength", "not":
		*out = append(*out, problem{field: field, message: label(field) + " is required"})
	case "type":
		*out = append(*out, problem{field: field, message: label(field) + " must be a string"})
	default:
		*out = append(*out, problem{field: field, message: label(field) + " is invalid"})
	}
}

func rank(field string) int {
	if idx, ok := fieldOrder[field]; ok {
		return idx
	}
	return len(fieldOrder)
}

func label(field string) string {
	if field == "" {
		return "Request"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
