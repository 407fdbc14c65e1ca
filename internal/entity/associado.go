// internal/entity/associado.go
//
// Titular member of a plan.  The largest schema of the domain: personal
// data, residential and billing addresses, plan and collection data, and
// the cremation add-on block.
package entity

import (
	"github.com/planovida/associado/internal/normalize"
	"github.com/planovida/associado/internal/schema"
)

var Associado = register(Descriptor{
	Name:  "associado",
	Table: "associado",
	Schema: schema.Schema{
		{Name: "unidadeId", Type: schema.TypeNumber, Required: true},
		{Name: "situacaoId", Type: schema.TypeNumber, Required: true},
		{Name: "nome", Type: schema.TypeString, Required: true},
		{Name: "rg", Type: schema.TypeString, Required: true},
		{Name: "cpfCnpj", Type: schema.TypeString, Unique: true},
		{Name: "dataNascimento", Type: schema.TypeDateTime, Required: true, Format: LayoutISODate},
		{Name: "dataFalecimento", Type: schema.TypeDateTime, Format: LayoutISODate},
		{Name: "estadoCivilId", Type: schema.TypeNumber, Required: true},
		{Name: "religiaoId", Type: schema.TypeNumber, Required: true},
		{Name: "naturalidade", Type: schema.TypeString},
		{Name: "nacionalidade", Type: schema.TypeBool, Required: true},
		{Name: "profissao", Type: schema.TypeString},
		{Name: "sexo", Type: schema.TypeNumber, Enum: ids(Sexo)},

		// Cremation add-on.
		{Name: "cremacao", Type: schema.TypeBool, Required: true},
		{Name: "adicionalId", Type: schema.TypeNumber},
		{Name: "filiacaoCremacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataInicioCarenciaCremacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataFimCarenciaCremacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "cadastroCremacao", Type: schema.TypeDateTime, Format: LayoutBRDateTime},
		{Name: "usuarioCremacao", Type: schema.TypeString},
		{Name: "situacaoCremacaoId", Type: schema.TypeNumber},

		// Contracts.
		{Name: "contrato", Type: schema.TypeNumber, Required: true},
		{Name: "contratoCemiterio", Type: schema.TypeNumber},

		// Residential address.
		{Name: "enderecoComercial", Type: schema.TypeBool, Required: true},
		{Name: "municipioId", Type: schema.TypeNumber, Required: true},
		{Name: "bairroId", Type: schema.TypeNumber, Required: true},
		{Name: "cep", Type: schema.TypeString, Required: true},
		{Name: "estado", Type: schema.TypeString, Required: true},
		{Name: "rua", Type: schema.TypeString, Required: true},
		{Name: "logradouro", Type: schema.TypeString, Required: true},
		{Name: "quadra", Type: schema.TypeString},
		{Name: "lote", Type: schema.TypeString},
		{Name: "numero", Type: schema.TypeString},
		{Name: "complemento", Type: schema.TypeString},

		// Billing address.
		{Name: "municipioCobrancaId", Type: schema.TypeNumber, Required: true},
		{Name: "bairroCobrancaId", Type: schema.TypeNumber, Required: true},
		{Name: "cepCobranca", Type: schema.TypeString, Required: true},
		{Name: "estadoCobranca", Type: schema.TypeString, Required: true},
		{Name: "ruaCobranca", Type: schema.TypeString, Required: true},
		{Name: "logradouroCobranca", Type: schema.TypeString, Required: true},
		{Name: "quadraCobranca", Type: schema.TypeString},
		{Name: "loteCobranca", Type: schema.TypeString},
		{Name: "numeroCobranca", Type: schema.TypeString},
		{Name: "complementoCobranca", Type: schema.TypeString},

		// Plan and collection.
		{Name: "planoId", Type: schema.TypeNumber},
		{Name: "dataContrato", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataInicioCarencia", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataFimCarencia", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataPrimeiraParcela", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "diaPagamento", Type: schema.TypeNumber},
		{Name: "ultimoPagamento", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "ultimoMesPago", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "cobradorId", Type: schema.TypeNumber},
		{Name: "regiaoId", Type: schema.TypeNumber},
		{Name: "rotaId", Type: schema.TypeNumber},
		{Name: "cobradorTemporarioId", Type: schema.TypeNumber},
		{Name: "regiaoTemporariaId", Type: schema.TypeNumber},
		{Name: "rotaTemporariaId", Type: schema.TypeNumber},
		{Name: "vendedorId", Type: schema.TypeNumber},
		{Name: "concorrenteId", Type: schema.TypeNumber},
		{Name: "dataCancelamento", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataQuitacao", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "dataContratoAnterior", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "ultimoMesPagoAnterior", Type: schema.TypeDateTime, Format: LayoutBRDate},
		{Name: "empresaAnterior", Type: schema.TypeString},
		{Name: "observacao", Type: schema.TypeString},
		{Name: "localCobranca", Type: schema.TypeNumber, Required: true, Enum: ids(LocalCobranca)},
		{Name: "horarioCobranca", Type: schema.TypeDateTime, Format: LayoutTime},
		{Name: "termoReajuste", Type: schema.TypeBool},
		{Name: "boletoEntregue", Type: schema.TypeBool},
		{Name: "tipoEntregaBoleto", Type: schema.TypeNumber, Enum: enumInts(1, 2, 3, 4, 5, 6)},
	},
	Normalize: auditNormalize(normalize.Map{
		"nome":                normalize.Upper,
		"rg":                  normalize.Digits,
		"cpfCnpj":             normalize.Digits,
		"naturalidade":        normalize.Upper,
		"profissao":           normalize.Upper,
		"usuarioCremacao":     normalize.Upper,
		"cep":                 normalize.Digits,
		"estado":              normalize.Upper,
		"rua":                 normalize.Upper,
		"logradouro":          normalize.Upper,
		"quadra":              normalize.Upper,
		"lote":                normalize.Upper,
		"numero":              normalize.Upper,
		"complemento":         normalize.Upper,
		"cepCobranca":         normalize.Digits,
		"estadoCobranca":      normalize.Upper,
		"ruaCobranca":         normalize.Upper,
		"logradouroCobranca":  normalize.Upper,
		"quadraCobranca":      normalize.Upper,
		"loteCobranca":        normalize.Upper,
		"numeroCobranca":      normalize.Upper,
		"complementoCobranca": normalize.Upper,
		"empresaAnterior":     normalize.Upper,
		"observacao":          normalize.Upper,
	}),
})
