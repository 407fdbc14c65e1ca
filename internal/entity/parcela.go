// internal/entity/parcela.go
//
// Monthly installment of a member's plan.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Parcela = register(Descriptor{
	Name:  "parcela",
	Table: "parcela",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "negociacaoId", Type: schema.TypeNumber},
		{Name: "numero", Type: schema.TypeNumber, Required: true},
		{Name: "valor", Type: schema.TypeNumber, Required: true},
		{Name: "dataVencimento", Type: schema.TypeDateTime, Required: true, Format: LayoutBRDate},
		{Name: "dataPagamento", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "valorPago", Type: schema.TypeNumber},
		{Name: "localCobranca", Type: schema.TypeNumber, Enum: ids(LocalCobranca)},
		{Name: "cobradorId", Type: schema.TypeNumber},
		// 0 open, 1 paid, 2 cancelled.
		{Name: "status", Type: schema.TypeNumber, Default: 0, Enum: enumInts(0, 1, 2)},
		{Name: "observacao", Type: schema.TypeString},
	},
	Normalize: auditNormalize(normalize.Map{
		"valor":      normalize.Decimal,
		"valorPago":  normalize.Decimal,
		"observacao": normalize.Upper,
	}),
})
