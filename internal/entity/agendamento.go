// internal/entity/agendamento.go
//
// Collection or service visit scheduled with a member.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Agendamento = register(Descriptor{
	Name:  "agendamento",
	Table: "agendamento",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "cobradorId", Type: schema.TypeNumber},
		{Name: "dataAgendamento", Type: schema.TypeDateTime, Required: true, Format: LayoutBRDate},
		{Name: "horario", Type: schema.TypeDateTime, Format: LayoutTime},
		// 0 scheduled, 1 done, 2 missed.
		{Name: "status", Type: schema.TypeNumber, Default: 0, Enum: enumInts(0, 1, 2)},
		{Name: "observacao", Type: schema.TypeString},
	},
	Normalize: auditNormalize(normalize.Map{
		"observacao": normalize.Upper,
	}),
})
