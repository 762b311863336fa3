package report

import (
	"github.com/dustin/go-humanize"
)

const ptBRNumber = "#.###,##"

// FormatBRL renders v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatBRL(v float64) string {
	if v < 0 {
		return "-R$ " + humanize.FormatFloat(ptBRNumber, -v)
	}
	return "R$ " + humanize.FormatFloat(ptBRNumber, v)
}

// FormatPercent renders a percentage with a decimal comma, e.g. "3,30%".
func FormatPercent(v float64) string {
	if v < 0 {
		return "-" + humanize.FormatFloat(ptBRNumber, -v) + "%"
	}
	return humanize.FormatFloat(ptBRNumber, v) + "%"
}
