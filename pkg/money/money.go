// Package money concentra a aritmética monetária e de quantidades.
// Todos os valores persistidos passam por Scale antes da gravação.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Scale arredonda o valor para 2 casas decimais (half-up)
func Scale(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Percent calcula base × percent / 100, já arredondado
func Percent(base, percent decimal.Decimal) decimal.Decimal {
	return Scale(base.Mul(percent).Div(hundred))
}
