// internal/entity/dependente.go
//
// Dependent of a titular member.  Covers both human dependents and pets;
// the pet-only fields (altura, peso, cor, porte, raça, espécie) stay
// optional for humans.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Dependente = register(Descriptor{
	Name:  "dependente",
	Table: "dependente",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "parentescoId", Type: schema.TypeNumber},
		{Name: "racaId", Type: schema.TypeNumber},
		{Name: "especieId", Type: schema.TypeNumber},
		{Name: "situacaoId", Type: schema.TypeNumber, Required: true},
		{Name: "nome", Type: schema.TypeString, Required: true},
		{Name: "cpf", Type: schema.TypeString, Unique: true},
		{Name: "altura", Type: schema.TypeNumber},
		{Name: "peso", Type: schema.TypeNumber},
		{Name: "cor", Type: schema.TypeString},
		{Name: "porte", Type: schema.TypeString, Enum: enumStrings(Portes)},
		{Name: "dataNascimento", Type: schema.TypeDateTime, Required: true, Format: LayoutBRDate},
		{Name: "dataFiliacao", Type: schema.TypeDateTime, Required: true, Format: LayoutBRDate},
		{Name: "dataFalecimento", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataInicioCarencia", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataFimCarencia", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "tipo", Type: schema.TypeNumber, Required: true, Enum: ids(TipoDependente)},
		{Name: "cremacao", Type: schema.TypeBool, Required: true},
		{Name: "filiacaoCremacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataInicioCarenciaCremacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataFimCarenciaCremacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "cadastroCremacao", Type: schema.TypeDateTime, Format: LayoutBRDateTime},
		{Name: "usuarioCremacao", Type: schema.TypeString},
		{Name: "situacaoCremacaoId", Type: schema.TypeNumber},
		{Name: "adicionalId", Type: schema.TypeNumber},
	},
	Normalize: auditNormalize(normalize.Map{
		"nome":            normalize.Upper,
		"cpf":             normalize.Digits,
		"altura":          normalize.Decimal,
		"peso":            normalize.Decimal,
		"cor":             normalize.Upper,
		"porte":           normalize.Upper,
		"usuarioCremacao": normalize.Upper,
	}),
})
