package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/RusMail/document-dealer/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	if len(dejaVuSansFont) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	return &Generator{fontName: "DejaVuSans"}, nil
}

// Generate строит PDF-карточку реквизитов контрагента.
func (g *Generator) Generate(contractor model.Contractor) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", dejaVuSansFont)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", dejaVuSansFont)

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Карточка контрагента", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, contractor.ShortName, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addSection(pdf, g.fontName, "Общие сведения", [][2]string{
		{"Полное наименование", contractor.FullName},
		{"ОГРН", contractor.OGRN},
		{"ИНН", contractor.INN},
		{"КПП", contractor.KPP},
		{"ОКПО", contractor.OKPO},
		{"ОКВЭД", contractor.OKVED},
	})

	addSection(pdf, g.fontName, "Адреса", [][2]string{
		{"Юридический адрес", contractor.LegalAddress},
		{"Фактический адрес", contractor.ActualAddress},
	})

	addSection(pdf, g.fontName, "Банковские реквизиты", [][2]string{
		{"Расчётный счёт", contractor.CheckingAccount},
		{"Банк", contractor.BankName},
		{"Корр. счёт", contractor.CorrespondentAccount},
		{"БИК", contractor.BIK},
	})

	addSection(pdf, g.fontName, "Контакты", [][2]string{
		{"Руководитель", contractor.Director},
		{"Телефон", contractor.Phone},
		{"Email", contractor.Email},
	})

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Сформировано %s", formatDate(time.Now())), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSection(pdf *gofpdf.Fpdf, fontName, title string, rows [][2]string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, row := range rows {
		pdf.SetFont(fontName, "B", 10)
		pdf.CellFormat(60, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 6, safeValue(row[1]), "1", "L", false)
	}
	pdf.Ln(2)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02.01.2006")
}
