// internal/entity/cartao.go
//
// Membership card issued for a titular or dependent.  `pagamento` stores
// the payment IDs covered by the card as a JSON array.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var CartaoAssociado = register(Descriptor{
	Name:  "cartao_associado",
	Table: "cartao_associado",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "dependenteId", Type: schema.TypeNumber},
		{Name: "pagamento", Type: schema.TypeArray},
		{Name: "dataPagamento", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "valorPagar", Type: schema.TypeNumber, Required: true},
		// 0 pending, 1 printed.
		{Name: "status", Type: schema.TypeNumber, Default: 0, Enum: enumInts(0, 1)},
	},
	Normalize: auditNormalize(normalize.Map{
		"valorPagar": normalize.Decimal,
	}),
})
