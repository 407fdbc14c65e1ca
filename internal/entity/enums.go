// internal/entity/enums.go
//
// Closed option sets shared by the entity schemas.
package entity

// Option is one row of a domain enumeration.
type Option struct {
	ID        int
	Descricao string
}

// Sexo enumerates the accepted gender codes.
var Sexo = []Option{
	{1, "MASCULINO"},
	{2, "FEMININO"},
	{3, "NÃO BINÁRIO"},
	{4, "INDEFINIDO"},
}

// LocalCobranca enumerates the accepted billing locations.
var LocalCobranca = []Option{
	{1, "ESCRITORIO"},
	{2, "BOLETO"},
	{3, "COBRANÇA RESIDENCIAL"},
	{4, "COBRANÇA COMERCIAL"},
	{5, "PAGAMENTO RECORRENTE"},
}

// TipoDependente enumerates the dependent kinds: 1 human, 2 pet.
var TipoDependente = []Option{
	{1, "HUMANO"},
	{2, "PET"},
}

// Portes enumerates the accepted pet sizes.
var Portes = []string{"P", "M", "G", "GG"}

// ids flattens an option table into the enum list a schema field accepts.
func ids(opts []Option) []any {
	out := make([]any, len(opts))
	for i, o := range opts {
		out[i] = o.ID
	}
	return out
}

// enumStrings converts a string set into a schema enum list.
func enumStrings(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// enumInts builds a schema enum list from literal codes.
func enumInts(vals ...int) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
