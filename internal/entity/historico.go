// internal/entity/historico.go
//
// Free-form history entry attached to a member's file.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Historico = register(Descriptor{
	Name:  "historico",
	Table: "historico",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		{Name: "tipoHistoricoId", Type: schema.TypeNumber},
		{Name: "descricao", Type: schema.TypeString, Required: true},
		{Name: "dataHistorico", Type: schema.TypeDateTime, Format: LayoutISODateTime},
	},
	Normalize: auditNormalize(normalize.Map{
		"descricao": normalize.Upper,
	}),
})
