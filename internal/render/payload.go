package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/RusMail/document-dealer/internal/model"
)

// NotSpecified — маркер отсутствующего ФИО руководителя.
const NotSpecified = "Не указан"

const contractTermDays = 330

var namePartPattern = regexp.MustCompile(`(?i)^[а-яёa-z]+$`)

// Payload — плоский набор полей, который ожидает внешний workflow
// при генерации документа. Имена полей зафиксированы шаблоном.
type Payload struct {
	DocumentID           string `json:"documentId"`
	TypeDoc              string `json:"type_doc"`
	DogovorNumber        string `json:"dogovor_number"`
	Date                 string `json:"date"`
	Ispolnitel           string `json:"ispolnitel"`
	DirectorIspolnitel   string `json:"director_ispolnitel"`
	Zakazchik            string `json:"zakazchik"`
	DirectorZakazchik    string `json:"director_zakazchik"`
	URAdressZakazchik    string `json:"uradress_zakazchik"`
	MailAdressZakazchik  string `json:"mailadress_zakazchik"`
	INNZakazchik         string `json:"inn_zakazchik"`
	KPPZakazchik         string `json:"kpp_zakazchik"`
	OGRNZakazchik        string `json:"ogrn_zakazchik"`
	RSZakazchik          string `json:"rs_zakazchik"`
	BankZakazchik        string `json:"bank_zakazchik"`
	KSZakazchik          string `json:"ks_zakazchik"`
	BIKZakazchik         string `json:"bik_zakazchik"`
	EmailZakazchik       string `json:"email_zakazchik"`
	PhoneZakazchik       string `json:"phone_zakazchik"`
	URAdressIspolnitel   string `json:"uradress_ispolnitel"`
	INNIspolnitel        string `json:"inn_ispolnitel"`
	KPPIspolnitel        string `json:"kpp_ispolnitel"`
	RSIspolnitel         string `json:"rs_ispolnitel"`
	BankIspolnitel       string `json:"bank_ispolnitel"`
	BIKIspolnitel        string `json:"bik_ispolnitel"`
	KSIspolnitel         string `json:"ks_ispolnitel"`
	OGRNIspolnitel       string `json:"ogrn_ispolnitel"`
	OKPOIspolnitel       string `json:"okpo_ispolnitel"`
	PhoneIspolnitel      string `json:"phone_ispolnitel"`
	EmailIspolnitel      string `json:"email_ispolnitel"`
	ColontitulIspolnitel string `json:"colontitul_ispolnitel"`
	ColontitulZakazchik  string `json:"colontitul_zakazchik"`
	NameDoc              string `json:"name_doc"`
	SrokDogovora         string `json:"srok_dogovora"`
}

// BuildPayload собирает поля для внешнего workflow из документа и обеих сторон.
func BuildPayload(doc *model.Document, customer, contractor *model.Contractor) Payload {
	date := formatDate(doc.Date)
	return Payload{
		DocumentID:           doc.ID.String(),
		TypeDoc:              doc.Type.Label(),
		DogovorNumber:        date,
		Date:                 date,
		Ispolnitel:           firstNonEmpty(contractor.FullName, contractor.ShortName),
		DirectorIspolnitel:   firstNonEmpty(contractor.Director, NotSpecified),
		Zakazchik:            firstNonEmpty(customer.FullName, customer.ShortName),
		DirectorZakazchik:    firstNonEmpty(customer.Director, NotSpecified),
		URAdressZakazchik:    customer.LegalAddress,
		MailAdressZakazchik:  firstNonEmpty(customer.ActualAddress, customer.LegalAddress),
		INNZakazchik:         customer.INN,
		KPPZakazchik:         customer.KPP,
		OGRNZakazchik:        customer.OGRN,
		RSZakazchik:          customer.CheckingAccount,
		BankZakazchik:        customer.BankName,
		KSZakazchik:          customer.CorrespondentAccount,
		BIKZakazchik:         customer.BIK,
		EmailZakazchik:       customer.Email,
		PhoneZakazchik:       customer.Phone,
		URAdressIspolnitel:   contractor.LegalAddress,
		INNIspolnitel:        contractor.INN,
		KPPIspolnitel:        contractor.KPP,
		RSIspolnitel:         contractor.CheckingAccount,
		BankIspolnitel:       contractor.BankName,
		BIKIspolnitel:        contractor.BIK,
		KSIspolnitel:         contractor.CorrespondentAccount,
		OGRNIspolnitel:       contractor.OGRN,
		OKPOIspolnitel:       contractor.OKPO,
		PhoneIspolnitel:      contractor.Phone,
		EmailIspolnitel:      contractor.Email,
		ColontitulIspolnitel: FormatDirectorName(contractor.Director),
		ColontitulZakazchik:  FormatDirectorName(customer.Director),
		NameDoc:              fmt.Sprintf("%s-%s %s", customer.ShortName, contractor.ShortName, date),
		SrokDogovora:         ContractEndDate(doc.Date),
	}
}

// FormatDirectorName сокращает полное ФИО "Фамилия Имя Отчество" до "И.О. Фамилия".
// Строки, не похожие на ФИО, возвращаются без изменений; пустые и
// значения-заглушки дают фиксированный маркер.
func FormatDirectorName(fullName string) string {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return NotSpecified
	}
	if strings.EqualFold(trimmed, NotSpecified) || trimmed == "—" || trimmed == "-" {
		return NotSpecified
	}

	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return trimmed
	}

	lastName := parts[0]
	firstName := parts[1]
	middleName := ""
	if len(parts) >= 3 {
		middleName = parts[2]
	}

	if !namePartPattern.MatchString(firstName) || !namePartPattern.MatchString(lastName) {
		return trimmed
	}

	firstInitial := initial(firstName)
	if middleName == "" {
		return fmt.Sprintf("%s. %s", firstInitial, lastName)
	}
	return fmt.Sprintf("%s.%s. %s", firstInitial, initial(middleName), lastName)
}

// ContractEndDate считает срок договора: дата начала плюс 330 дней,
// в формате "ДД.ММ.ГГГГг.".
func ContractEndDate(start time.Time) string {
	if start.IsZero() {
		return "Не указана"
	}
	return start.AddDate(0, 0, contractTermDays).Format("02.01.2006") + "г."
}

func initial(part string) string {
	runes := []rune(part)
	return string(unicode.ToUpper(runes[0]))
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
