package report

import (
	"io"
	"strings"

	"gastos/internal/core"
)

// CSVHeader is the fixed export header. Column names are part of the export
// contract consumed by the household's spreadsheets; do not rename them.
const CSVHeader = "Categoria,SubCategoria,Pessoa,Valor,FormaPagamento,Data"

const csvDateLayout = "02/01/2006"

// CSV renders records in their given order as comma-joined rows under
// CSVHeader. Fields are written verbatim, without quoting or escaping: the
// taxonomy contains no commas and amounts use a dot separator, but a free
// text subcategory containing a comma will shift columns. That matches the
// historical export format and is a documented limitation. Undated records
// get an empty Data field rather than the export timestamp the historical
// exporter substituted, so repeated exports of unchanged data are identical.
func CSV(rs []core.ExpenseRecord) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, r := range rs {
		date := ""
		if r.HasDate() {
			date = r.Date.Format(csvDateLayout)
		}
		b.WriteString(strings.Join([]string{
			string(r.Category),
			r.SubCategory,
			string(r.Payer),
			r.Amount.String(),
			string(r.PaymentMethod),
			date,
		}, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteCSV streams the export to w.
func WriteCSV(w io.Writer, rs []core.ExpenseRecord) error {
	_, err := io.WriteString(w, CSV(rs))
	return err
}
