// internal/normalize/normalize_test.go
//
// Unit tests for the normalization hooks.
//
// Run: go test ./internal/normalize -v

package normalize

import "testing"

func TestUpper(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{"  maria  da silva ", "MARIA DA SILVA"},
		{"JOÃO", "JOÃO"},
		{42, 42}, // non-string passes through
	}
	for _, c := range cases {
		if got := Upper(c.in); got != c.want {
			t.Errorf("Upper(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("123.456.789-00"); got != "12345678900" {
		t.Errorf("Digits = %v", got)
	}
	if got := Digits("74.000-000"); got != "74000000" {
		t.Errorf("Digits = %v", got)
	}
	if got := Digits(true); got != true {
		t.Errorf("Digits non-string = %v", got)
	}
}

func TestDecimal(t *testing.T) {
	if got := Decimal(10.999); got != 11.0 {
		t.Errorf("Decimal = %v", got)
	}
	if got := Decimal(55.554); got != 55.55 {
		t.Errorf("Decimal = %v", got)
	}
	if got := Decimal("x"); got != "x" {
		t.Errorf("Decimal non-numeric = %v", got)
	}
}

func TestApplySkipsAbsentAndNil(t *testing.T) {
	m := Map{"nome": Upper, "cpf": Digits}
	payload := map[string]any{"nome": " ana ", "cpf": nil}
	m.Apply(payload)

	if payload["nome"] != "ANA" {
		t.Errorf("nome = %v", payload["nome"])
	}
	if payload["cpf"] != nil {
		t.Errorf("nil value should be untouched, got %v", payload["cpf"])
	}
}
