// internal/entity/atendimento.go
//
// Service-desk interaction with a member.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Atendimento = register(Descriptor{
	Name:  "atendimento",
	Table: "atendimento",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "tipoAtendimentoId", Type: schema.TypeNumber},
		{Name: "subTipoAtendimentoId", Type: schema.TypeNumber},
		{Name: "dataContato", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataRetorno", Type: schema.TypeDateTime, Format: LayoutBRDateTime},
		// 0 open, 1 in progress, 2 closed.
		{Name: "status", Type: schema.TypeNumber, Required: true, Enum: enumInts(0, 1, 2)},
		{Name: "inicioAtendimento", Type: schema.TypeDateTime, Format: LayoutBRDateTime},
		{Name: "fimAtendimento", Type: schema.TypeDateTime, Format: LayoutBRDateTime},
		{Name: "observacao", Type: schema.TypeString},
	},
	Normalize: auditNormalize(normalize.Map{
		"observacao": normalize.Upper,
	}),
})
