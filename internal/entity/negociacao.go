// internal/entity/negociacao.go
//
// Debt renegotiation for a member.  The agreed installment plan travels as
// a nested array validated element by element.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Negociacao = register(Descriptor{
	Name:  "negociacao",
	Table: "negociacao",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "dataNegociacao", Type: schema.TypeDateTime, Required: true, Format: LayoutBRDate},
		{Name: "valorTotal", Type: schema.TypeNumber, Required: true},
		// 0 proposed, 1 accepted, 2 broken.
		{Name: "status", Type: schema.TypeNumber, Default: 0, Enum: enumInts(0, 1, 2)},
		{Name: "observacao", Type: schema.TypeString},
		{Name: "parcelas", Type: schema.TypeArray, Nested: schema.Schema{
			{Name: "numero", Type: schema.TypeNumber, Required: true},
			{Name: "valor", Type: schema.TypeNumber, Required: true},
			{Name: "dataVencimento", Type: schema.TypeDateTime, Required: true, Format: LayoutBRDate},
		}},
	},
	Normalize: auditNormalize(normalize.Map{
		"valorTotal": normalize.Decimal,
		"observacao": normalize.Upper,
	}),
})
