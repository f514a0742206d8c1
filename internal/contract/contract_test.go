package contract

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDefault(t *testing.T) *Contract {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	return c
}

func TestValidate(t *testing.T) {
	c := mustDefault(t)

	cases := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "complete payload",
			body: `{"name":"Ada","email":"ada@example.com","country":"Canada","region":"Ontario"}`,
		},
		{
			name: "null region",
			body: `{"name":"Ada","email":"ada@example.com","country":"Iceland","region":null}`,
		},
		{
			name: "missing fields",
			body: `{"region":null}`,
			want: []string{"Name is required", "Email is required", "Country is required"},
		},
		{
			name: "blank values",
			body: `{"name":"  ","email":"ada@example.com","country":""}`,
			want: []string{"Name is required", "Country is required"},
		},
		{
			name: "country placeholder",
			body: `{"name":"Ada","email":"ada@example.com","country":"Select a country","region":null}`,
			want: []string{"Country is required"},
		},
		{
			name: "wrong type",
			body: `{"name":"Ada","email":"ada@example.com","country":"Canada","region":7}`,
			want: []string{"Region must be a string"},
		},
		{
			name: "not json",
			body: `name=Ada`,
			want: []string{"Request body must be a JSON object"},
		},
		{
			name: "array body",
			body: `[]`,
			want: []string{"Request body must be a JSON object"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Validate([]byte(tc.body))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRejectsDocumentWithoutSignup(t *testing.T) {
	raw := []byte(`openapi: 3.0.3
info: {title: other, version: "1"}
paths:
  /other:
    get:
      responses:
        '200': {description: ok}
`)
	_, err := Load(context.Background(), raw)
	if err == nil || !strings.Contains(err.Error(), "missing POST /newsletter-signup") {
		t.Fatalf("expected missing operation error, got %v", err)
	}
}

func TestLoadRejectsEmptyDocument(t *testing.T) {
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestRawIsCopy(t *testing.T) {
	raw := Raw()
	if !strings.Contains(string(raw), SignupPath) {
		t.Fatal("raw document does not mention signup path")
	}
	raw[0] = 'X'
	if Raw()[0] == 'X' {
		t.Fatal("Raw exposed the embedded buffer")
	}
}

func TestDocumentExposesOperation(t *testing.T) {
	doc := mustDefault(t).Document()
	if op := doc.Paths.Value(SignupPath).Post; op == nil || op.OperationID != "newsletterSignup" {
		t.Fatalf("unexpected operation %+v", op)
	}
}
