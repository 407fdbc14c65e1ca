// internal/crud/service_test.go
//
// End-to-end tests for the entity service: schema validation, uniqueness
// probes, normalization, and actor stamping over a mocked database.
//
// Run: go test ./internal/crud -v

package crud

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

func depSchema() schema.Schema {
	return schema.Schema{
		{Name: "nome", Type: schema.TypeString, Required: true},
		{Name: "cpf", Type: schema.TypeString, Unique: true},
		{Name: "ativo", Type: schema.TypeBool, Default: true},
		{Name: "createdBy", Type: schema.TypeString, Required: true},
		{Name: "updatedBy", Type: schema.TypeString},
	}
}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	repo, mock := newMockRepo(t, depColumns())
	norm := normalize.Map{"nome": normalize.Upper, "cpf": normalize.Digits}
	return NewService("dependente", repo, depSchema(), norm, nil), mock
}

func TestCreateValidatesNormalizesAndStamps(t *testing.T) {
	svc, mock := newMockService(t)

	// Uniqueness probe for cpf runs against the raw validated value.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM `dependente` WHERE `cpf` = ? AND `ativo` = TRUE LIMIT 1")).
		WithArgs("123.456.789-00").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO `dependente` (`ativo`, `cpf`, `createdAt`, `createdBy`, `nome`, `updatedAt`) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs(true, "12345678900", fixedNow, "ADMIN", "ANA LIMA", fixedNow).
		WillReturnResult(sqlmock.NewResult(9, 1))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `dependente` WHERE `id` = ? LIMIT 1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "cpf", "ativo"}).
			AddRow(int64(9), "ANA LIMA", "12345678900", true))

	rec, err := svc.Create(context.Background(), "ADMIN", map[string]any{
		"nome": " ana  lima ",
		"cpf":  "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID() != 9 || rec["nome"] != "ANA LIMA" {
		t.Fatalf("unexpected record: %#v", rec)
	}
	met(t, mock)
}

func TestCreateDuplicateCPF(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM `dependente` WHERE `cpf` = ? AND `ativo` = TRUE LIMIT 1")).
		WithArgs("111").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	_, err := svc.Create(context.Background(), "ADMIN", map[string]any{
		"nome": "ANA", "cpf": "111",
	})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "cpf" || ve.Reason != schema.ReasonDuplicate {
		t.Fatalf("got %q/%q", ve.Field, ve.Reason)
	}
	met(t, mock) // no INSERT may have run
}

func TestCreateMissingRequiredFieldRunsNoSQL(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.Create(context.Background(), "ADMIN", map[string]any{})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "nome" || ve.Reason != schema.ReasonRequired {
		t.Fatalf("got %q/%q", ve.Field, ve.Reason)
	}
	met(t, mock)
}

func TestUpdateStampsActorAndSkipsAbsentFields(t *testing.T) {
	svc, mock := newMockService(t)

	selectByID := regexp.QuoteMeta("SELECT * FROM `dependente` WHERE `id` = ? LIMIT 1")

	mock.ExpectQuery(selectByID).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "cpf"}).
			AddRow(int64(4), "ANA", "222"))

	// Absent fields are neither required nor defaulted on update: only
	// nome, updatedAt, and the stamped updatedBy are written.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `dependente` SET `nome` = ?, `updatedAt` = ?, `updatedBy` = ? WHERE `id` = ?")).
		WithArgs("NOVO NOME", fixedNow, "OPERADOR", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(selectByID).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "cpf", "updatedBy"}).
			AddRow(int64(4), "NOVO NOME", "222", "OPERADOR"))

	rec, err := svc.Update(context.Background(), "OPERADOR", 4, map[string]any{
		"nome": "novo nome",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec["cpf"] != "222" {
		t.Fatalf("untouched cpf changed: %#v", rec)
	}
	met(t, mock)
}

func TestUpdateUniqueExcludesSelf(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM `dependente` WHERE `cpf` = ? AND `ativo` = TRUE AND `id` <> ? LIMIT 1")).
		WithArgs("333", int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	selectByID := regexp.QuoteMeta("SELECT * FROM `dependente` WHERE `id` = ? LIMIT 1")
	mock.ExpectQuery(selectByID).WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cpf"}).AddRow(int64(6), "222"))

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `dependente` SET `cpf` = ?, `updatedAt` = ?, `updatedBy` = ? WHERE `id` = ?")).
		WithArgs("333", fixedNow, "ADMIN", int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(selectByID).WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cpf"}).AddRow(int64(6), "333"))

	if _, err := svc.Update(context.Background(), "ADMIN", 6, map[string]any{
		"cpf": "333",
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	met(t, mock)
}
