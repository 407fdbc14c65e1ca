// internal/schema/validate_test.go
//
// Unit tests for the schema validator.
//
// Run: go test ./internal/schema -v

package schema

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeChecker answers uniqueness probes from a fixture map of field → value
// → owning record ID.
type fakeChecker struct {
	taken map[string]map[any]int64
	calls int
}

func (f *fakeChecker) ExistsActiveOther(_ context.Context, field string, value any, excludeID int64) (bool, error) {
	f.calls++
	id, ok := f.taken[field][value]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

func baseSchema() Schema {
	return Schema{
		{Name: "nome", Type: TypeString, Required: true},
		{Name: "cpf", Type: TypeString, Unique: true},
		{Name: "sexo", Type: TypeNumber, Enum: []any{1, 2, 3, 4}},
		{Name: "ativo", Type: TypeBool, Default: true},
		{Name: "dataNascimento", Type: TypeDateTime, Format: "2006-01-02"},
	}
}

func wantFailure(t *testing.T, err error, field, reason string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != field || ve.Reason != reason {
		t.Fatalf("got failure %q/%q, want %q/%q", ve.Field, ve.Reason, field, reason)
	}
}

func TestRequiredFieldAbsent(t *testing.T) {
	_, err := Validate(context.Background(), map[string]any{}, baseSchema(), nil, 0)
	wantFailure(t, err, "nome", ReasonRequired)
}

func TestDefaultInjected(t *testing.T) {
	clean, err := Validate(context.Background(),
		map[string]any{"nome": "ANA"}, baseSchema(), nil, 0)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if clean["ativo"] != true {
		t.Errorf("ativo default = %v, want true", clean["ativo"])
	}
	if _, present := clean["cpf"]; present {
		t.Errorf("optional absent field should stay absent")
	}
}

func TestTypeMismatch(t *testing.T) {
	_, err := Validate(context.Background(),
		map[string]any{"nome": 12}, baseSchema(), nil, 0)
	wantFailure(t, err, "nome", ReasonType)
}

func TestDatetimeParsed(t *testing.T) {
	clean, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "dataNascimento": "1990-07-15"},
		baseSchema(), nil, 0)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	ts, ok := clean["dataNascimento"].(time.Time)
	if !ok {
		t.Fatalf("dataNascimento not parsed, got %T", clean["dataNascimento"])
	}
	if ts.Year() != 1990 || ts.Month() != time.July || ts.Day() != 15 {
		t.Errorf("parsed %v", ts)
	}
}

func TestDatetimeBadFormat(t *testing.T) {
	_, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "dataNascimento": "15/07/1990"},
		baseSchema(), nil, 0)
	wantFailure(t, err, "dataNascimento", ReasonFormat)
}

func TestEnum(t *testing.T) {
	_, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "sexo": 5}, baseSchema(), nil, 0)
	wantFailure(t, err, "sexo", ReasonEnum)

	var ve *ValidationError
	errors.As(err, &ve)
	if len(ve.Allowed) != 4 {
		t.Errorf("Allowed = %v", ve.Allowed)
	}

	// Member value passes, including across numeric kinds.
	if _, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "sexo": float64(2)}, baseSchema(), nil, 0); err != nil {
		t.Errorf("sexo=2 should pass: %v", err)
	}
}

func TestUniqueDuplicate(t *testing.T) {
	uniq := &fakeChecker{taken: map[string]map[any]int64{
		"cpf": {"111": 7},
	}}

	_, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "cpf": "111"}, baseSchema(), uniq, 0)
	wantFailure(t, err, "cpf", ReasonDuplicate)

	// Updating the owning record itself does not collide.
	if _, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "cpf": "111"}, baseSchema(), uniq, 7); err != nil {
		t.Errorf("self update should pass: %v", err)
	}

	// A free value passes.
	if _, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "cpf": "222"}, baseSchema(), uniq, 0); err != nil {
		t.Errorf("free cpf should pass: %v", err)
	}
}

func TestUniqueSkipsNull(t *testing.T) {
	uniq := &fakeChecker{taken: map[string]map[any]int64{}}
	if _, err := Validate(context.Background(),
		map[string]any{"nome": "ANA", "cpf": nil}, baseSchema(), uniq, 0); err != nil {
		t.Fatalf("null unique value should pass: %v", err)
	}
	if uniq.calls != 0 {
		t.Errorf("null value must not reach the repository, got %d calls", uniq.calls)
	}
}

func TestNestedArrayDottedPath(t *testing.T) {
	s := Schema{
		{Name: "valorTotal", Type: TypeNumber, Required: true},
		{Name: "parcelas", Type: TypeArray, Nested: Schema{
			{Name: "numero", Type: TypeNumber, Required: true},
			{Name: "valor", Type: TypeNumber, Required: true},
		}},
	}

	_, err := Validate(context.Background(), map[string]any{
		"valorTotal": 300.0,
		"parcelas": []any{
			map[string]any{"numero": 1, "valor": 150.0},
			map[string]any{"numero": 2},
		},
	}, s, nil, 0)
	wantFailure(t, err, "parcelas.1.valor", ReasonRequired)
}

func TestNestedObject(t *testing.T) {
	s := Schema{
		{Name: "endereco", Type: TypeObject, Required: true, Nested: Schema{
			{Name: "cep", Type: TypeString, Required: true},
			{Name: "estado", Type: TypeString},
		}},
	}

	clean, err := Validate(context.Background(), map[string]any{
		"endereco": map[string]any{"cep": "74000000"},
	}, s, nil, 0)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	sub := clean["endereco"].(map[string]any)
	if sub["cep"] != "74000000" {
		t.Errorf("nested normalized payload = %v", sub)
	}

	_, err = Validate(context.Background(), map[string]any{
		"endereco": map[string]any{},
	}, s, nil, 0)
	wantFailure(t, err, "endereco.cep", ReasonRequired)
}

func TestFailFastStopsAtFirstDeclaredField(t *testing.T) {
	uniq := &fakeChecker{taken: map[string]map[any]int64{
		"cpf": {"111": 7},
	}}
	// Both nome and cpf are wrong; nome is declared first, so only the
	// required failure surfaces and the repository is never consulted.
	_, err := Validate(context.Background(),
		map[string]any{"cpf": "111"}, baseSchema(), uniq, 0)
	wantFailure(t, err, "nome", ReasonRequired)
	if uniq.calls != 0 {
		t.Errorf("fail-fast must short-circuit uniqueness, got %d calls", uniq.calls)
	}
}

func TestRegisterRejectsBadSchemas(t *testing.T) {
	cases := []struct {
		name string
		s    Schema
	}{
		{"duplicate field", Schema{{Name: "a", Type: TypeString}, {Name: "a", Type: TypeString}}},
		{"unknown type", Schema{{Name: "a", Type: Type("blob")}}},
		{"format on non-datetime", Schema{{Name: "a", Type: TypeString, Format: "2006"}}},
		{"nested on scalar", Schema{{Name: "a", Type: TypeString, Nested: Schema{{Name: "b", Type: TypeString}}}}},
		{"default type mismatch", Schema{{Name: "a", Type: TypeBool, Default: "yes"}}},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: Register should panic", c.name)
				}
			}()
			Register("bad/"+c.name, c.s)
		}()
	}
}

func TestRegisterAndGet(t *testing.T) {
	s := baseSchema()
	Register("teste", s)
	got, ok := Get("teste")
	if !ok || len(got) != len(s) {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
	if _, ok := Get("desconhecido"); ok {
		t.Errorf("unknown entity should not resolve")
	}
}
