// internal/entity/contato.go
//
// Contact channel of a member: landline, mobile, or e-mail.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Contato = register(Descriptor{
	Name:  "contato",
	Table: "contato",
	Schema: schema.Schema{
		{Name: "associadoId", Type: schema.TypeNumber, Required: true},
		// 1 landline, 2 mobile, 3 e-mail.
		{Name: "tipo", Type: schema.TypeNumber, Required: true, Enum: enumInts(1, 2, 3)},
		{Name: "descricao", Type: schema.TypeString, Required: true},
		{Name: "principal", Type: schema.TypeBool, Default: false},
	},
	Normalize: auditNormalize(normalize.Map{
		"descricao": normalize.Upper,
	}),
})
