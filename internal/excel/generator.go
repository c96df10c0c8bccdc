package excel

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/RusMail/document-dealer/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate выгружает реестр контрагентов на один лист xlsx.
func (g *Generator) Generate(contractors []model.Contractor) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Контрагенты"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Краткое наименование",
		"Полное наименование",
		"ОГРН",
		"ИНН",
		"КПП",
		"ОКПО",
		"ОКВЭД",
		"Юридический адрес",
		"Фактический адрес",
		"Расчётный счёт",
		"Банк",
		"Корр. счёт",
		"БИК",
		"Руководитель",
		"Телефон",
		"Email",
		"Добавил",
		"Дата добавления",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		set(cell, header)
	}

	for i, contractor := range contractors {
		row := i + 2
		values := []interface{}{
			contractor.ShortName,
			contractor.FullName,
			contractor.OGRN,
			contractor.INN,
			contractor.KPP,
			contractor.OKPO,
			contractor.OKVED,
			contractor.LegalAddress,
			contractor.ActualAddress,
			contractor.CheckingAccount,
			contractor.BankName,
			contractor.CorrespondentAccount,
			contractor.BIK,
			contractor.Director,
			contractor.Phone,
			contractor.Email,
			creatorName(contractor),
			formatDate(contractor.CreatedAt),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "B", 40)
	_ = file.SetColWidth(sheet, "C", "G", 16)
	_ = file.SetColWidth(sheet, "H", "I", 45)
	_ = file.SetColWidth(sheet, "J", "M", 22)
	_ = file.SetColWidth(sheet, "N", "R", 24)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func creatorName(contractor model.Contractor) string {
	if contractor.Creator == nil {
		return ""
	}
	return contractor.Creator.Name
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
