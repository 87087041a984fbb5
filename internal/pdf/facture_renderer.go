package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"edulink/internal/domain"
	"edulink/internal/port"
)

var (
	titleStyle  = props.Text{Size: 18, Style: fontstyle.Bold}
	labelStyle  = props.Text{Size: 9, Style: fontstyle.Bold}
	bodyStyle   = props.Text{Size: 9}
	rightBody   = props.Text{Size: 9, Align: align.Right}
	rightLabel  = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	footerStyle = props.Text{Size: 7, Align: align.Center, Top: 2}
)

type factureRenderer struct{}

// NewFactureRenderer creates a FactureRenderer producing A4 PDFs.
func NewFactureRenderer() port.FactureRenderer {
	return &factureRenderer{}
}

func (r *factureRenderer) Render(f *domain.Facture, parties domain.FactureParties) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(6, "FACTURE", titleStyle),
		text.NewCol(6, f.Numero, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Top: 3}),
	)
	m.AddRow(5,
		text.NewCol(6, "Date d'émission : "+formatDate(f.DateEmission), bodyStyle),
		text.NewCol(6, "Échéance : "+formatDate(f.DateEcheance), rightBody),
	)
	m.AddRows(line.NewRow(6))

	m.AddRow(5, text.NewCol(6, "Émetteur", labelStyle), text.NewCol(6, "Client", labelStyle))
	issuer, client := partyLines(parties.Issuer), partyLines(parties.Client)
	for i := 0; i < len(issuer) || i < len(client); i++ {
		m.AddRow(4, text.NewCol(6, at(issuer, i), bodyStyle), text.NewCol(6, at(client, i), bodyStyle))
	}
	m.AddRows(line.NewRow(6))

	m.AddRow(6,
		text.NewCol(6, "Désignation", labelStyle),
		text.NewCol(2, "Quantité", rightLabel),
		text.NewCol(2, "Prix unitaire HT", rightLabel),
		text.NewCol(2, "Total HT", rightLabel),
	)
	m.AddRows(lineRows(f.Lignes)...)
	m.AddRows(line.NewRow(6))

	m.AddRow(5, text.NewCol(9, "Total HT", rightLabel), text.NewCol(3, FormatEuros(f.MontantHT), rightBody))
	m.AddRow(5,
		text.NewCol(9, fmt.Sprintf("TVA (%s %%)", formatRate(f.TauxTVA)), rightLabel),
		text.NewCol(3, FormatEuros(f.TVA), rightBody),
	)
	m.AddRow(7,
		text.NewCol(9, "Total TTC", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, FormatEuros(f.MontantTTC), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	if f.Notes != "" {
		m.AddRows(
			text.NewRow(8, "Notes", props.Text{Size: 9, Style: fontstyle.Bold, Top: 4}),
			text.NewRow(12, f.Notes, bodyStyle),
		)
	}
	if f.Status == domain.FacturePayee && f.DatePaiement != nil {
		m.AddRows(text.NewRow(8, "Acquittée le "+formatDate(*f.DatePaiement), props.Text{Size: 10, Style: fontstyle.Bold, Top: 4}))
	}
	m.AddRows(text.NewRow(10,
		"En cas de retard de paiement, une indemnité forfaitaire de 40 € pour frais de recouvrement sera exigée.",
		footerStyle))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf.Render %s: %w", f.Numero, err)
	}
	return doc.GetBytes(), nil
}

func lineRows(lignes domain.FactureLignes) []core.Row {
	rows := make([]core.Row, 0, len(lignes))
	for _, l := range lignes {
		rows = append(rows, row.New(5).Add(
			text.NewCol(6, l.Description, bodyStyle),
			text.NewCol(2, formatQuantity(l.Quantite), rightBody),
			text.NewCol(2, FormatEuros(l.PrixUnitaire), rightBody),
			text.NewCol(2, FormatEuros(l.Total), rightBody),
		))
	}
	return rows
}

func partyLines(p domain.PartyInfo) []string {
	var out []string
	for _, s := range []string{p.Name, p.Address, siretLine(p.Siret), p.Email} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func siretLine(siret string) string {
	if siret == "" {
		return ""
	}
	return "SIRET " + siret
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func formatDate(d domain.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02/01/2006")
}

func formatRate(rate float64) string {
	return strings.Replace(strconv.FormatFloat(rate, 'f', -1, 64), ".", ",", 1)
}

func formatQuantity(q float64) string {
	return strings.Replace(strconv.FormatFloat(q, 'f', -1, 64), ".", ",", 1)
}

// FormatEuros renders cents the French way: 1 234,56 €.
func FormatEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	units := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, c := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return fmt.Sprintf("%s%s,%02d €", sign, b.String(), cents%100)
}
