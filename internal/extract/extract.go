package extract

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/cvo-backend/internal/normalize"
)

type pattern struct {
	label string
	re    *regexp.Regexp
}

// Each pattern captures the value in group 1. Captures stop at the next
// known label or at the end of the line.
var patterns = []pattern{
	{Bank, regexp.MustCompile(`(?im)(?:\bBANCO|FINANCIACI[ÓO]N|ENTIDAD FINANCIERA)[: \t]*([A-Z0-9 \t]+?)[ \t]*(?:TIPO|PERMANENCIA|CUOTA|PLAZO|ENTRADA|$)`)},
	{Advisor, regexp.MustCompile(`(?im)Comercial:[ \t]*([A-Za-zÀ-ÿ \t]+?)[ \t]*(?:AUTOM[ÓO]VIL|$)`)},
	{Total, regexp.MustCompile(`(?i)\bTOTAL[: \t]*([\d.,]+)[ \t]*EUROS`)},
	{Plate, regexp.MustCompile(`(?i)N[°º][ \t]*DE[ \t]*MATR[ÍI]CULA[: \t]*([A-Z0-9]+(?:-[A-Z0-9]+)?)`)},
	{Province, regexp.MustCompile(`(?im)PROVINCIA[: \t]*([A-Za-zÀ-ÿ \t]+?)[ \t]*(?:TFNO|$)`)},
	{PostalCode, regexp.MustCompile(`(?i)C\.P\.[: \t]*(\d{5})`)},
	{City, regexp.MustCompile(`(?im)CIUDAD[: \t]*([A-Za-zÀ-ÿ \t.\-]+?)[ \t]*(?:C\.P\.|PROVINCIA|TFNO|$)`)},
	{Email, regexp.MustCompile(`(?i)(?:EMAIL[: \t]*)?([a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,})`)},
	{Phone, regexp.MustCompile(`(?i)TFNO\.\s*PARTICULAR[: \t]*(\+34[ \t]?\d{9}|\d{3}[ \t]\d{3}[ \t]\d{3}|\d{9})`)},
	{DocumentID, regexp.MustCompile(`(?i)D\.N\.I\.[ \t]*(?:[ÓO][ \t]*N\.I\.F\.)?[: \t]*([A-Z0-9][A-Z0-9\-]{6,10}[A-Z0-9]?)`)},
	{Address, regexp.MustCompile(`(?im)DOMICILIO[: \t]*([A-Za-zÀ-ÿ0-9 \t.,ºª/\-]+?)[ \t]*(?:TFNO\.|$)`)},
	{PortalOrigin, regexp.MustCompile(`(?im)PORTAL\s*ORIGEN[: \t]*([A-Za-zÀ-ÿ \t]+?)[ \t]*(?:DOMICILIO|$)`)},
	{ClientName, regexp.MustCompile(`(?im)NOMBRE\s*Y\s*APELLIDOS\s*O\s*EMPRESA[: \t]*([A-Za-zÀ-ÿ \t.,&]+?)[ \t]*(?:D\.N\.I\.|$)`)},
	{OrderDate, regexp.MustCompile(`(?i)FECHA\s*DE\s*PEDIDO[: \t]*(\d{1,2}[-/]\d{1,2}[-/]\d{4}|\d{4}-\d{2}-\d{2}|(?:\p{L}+[ \t]+)?\d{1,2}[ \t]+de[ \t]+\p{L}+[ \t]+(?:del?[ \t]+)?\d{4})`)},
	{VIN, regexp.MustCompile(`(?i)N[°º]\s*BASTIDOR[: \t]*([A-Z0-9]{17})`)},
	{Model, regexp.MustCompile(`(?im)MODELO[: \t]*((?:BMW|MINI)[ \t]+.+?)[ \t]*(?:\d{2,3}[ \t]*KW\b|KIL[ÓO]METROS|COLOR|$)`)},
	{Discount, regexp.MustCompile(`(?i)OTROS\s+GASTOS\s*-\s*SUBTOTAL\s*(-?[\d.,]+)`)},
	{OrderNumber, regexp.MustCompile(`(?i)N[°º]\s*PEDIDO[: \t]*([A-Z0-9]+)`)},
	{Color, regexp.MustCompile(`(?im)\bCOLOR[: \t]*([A-Za-zÀ-ÿ \t]+?)[ \t]*(?:TAPICER[ÍI]A|EQUIPO|SUBTOTAL|$)`)},
	{Kilometers, regexp.MustCompile(`(?i)KIL[ÓO]METROS[: \t]*([\d.,]+)`)},
	{FirstRegistration, regexp.MustCompile(`(?i)(?:N[°º]\s*COM|PRIMERA\s+FECHA\s+MATRICULACI[ÓO]N)[: \t]*(\d{2}\s*/\s*\d{2}\s*/\s*\d{4})`)},
	{Tomo, regexp.MustCompile(`(?im)\bTOMO\b[: \t]*(.+?)[ \t]*$`)},
}

// bankFallbacks are tried in order when no BANCO label is present.
var bankFallbacks = []*regexp.Regexp{
	regexp.MustCompile(`(?i)BMW\s*BANK`),
	regexp.MustCompile(`(?i)BMW\s*FINANCIAL\s*SERVICES`),
	regexp.MustCompile(`(?i)\bSELECT\b`),
	regexp.MustCompile(`(?i)\bLINEAL\b`),
	regexp.MustCompile(`(?i)\bBALLOON\b`),
	regexp.MustCompile(`(?i)TRIPLE\s*0`),
	regexp.MustCompile(`(?i)FINANCIAD[AO]`),
	regexp.MustCompile(`(?i)FINANCIACI[ÓO]N`),
	regexp.MustCompile(`(?i)\b(?:BBVA|CAIXABANK|SANTANDER|SABADELL|BANKINTER)\b`),
	regexp.MustCompile(`\bING\b`),
	regexp.MustCompile(`(?i)\bCONTADO\b`),
	regexp.MustCompile(`(?i)\bEFECTIVO\b`),
}

var (
	modelLine     = regexp.MustCompile(`(?im)MODELO[: \t]*(.+)$`)
	cityLine      = regexp.MustCompile(`(?im)CIUDAD[: \t]*([^\n\t]+?)[ \t]*(?:C\.P\.|PROVINCIA|\d{5}|$)`)
	anyPhone      = regexp.MustCompile(`(?:\+34\s*)?\b(\d{9})\b`)
	cityTrailingC = regexp.MustCompile(`(?i)\s+c$`)
	cityJunk      = regexp.MustCompile(`[^\p{L}\p{N}\s.\-]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ")

// FromText extracts every vocabulary field from text. It never fails;
// fields that cannot be found are left empty.
func FromText(text string) Fields {
	text = lineBreaks.Replace(text)
	f := NewFields()

	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); !isLabelFragment(v) {
				f[p.label] = v
			}
		}
	}

	applyFallbacks(f, text)
	postProcess(f, text)
	return f
}

var foldedLabels = func() []string {
	out := make([]string, len(Vocabulary))
	for i, l := range Vocabulary {
		out[i] = normalize.Fold(l)
	}
	return out
}()

// isLabelFragment reports whether v is a field label, or the start of one,
// picked up in place of a missing value.
func isLabelFragment(v string) bool {
	fv := normalize.Fold(v)
	if fv == "" {
		return false
	}
	for _, l := range foldedLabels {
		if strings.HasPrefix(l, fv) {
			return true
		}
	}
	return false
}

func applyFallbacks(f Fields, text string) {
	if f[Bank] == "" {
		for _, re := range bankFallbacks {
			if m := re.FindString(text); m != "" {
				f[Bank] = strings.TrimSpace(m)
				break
			}
		}
	}
	if f[Model] == "" {
		if m := modelLine.FindStringSubmatch(text); m != nil {
			f[Model] = strings.TrimSpace(m[1])
		}
	}
	if f[City] == "" {
		if m := cityLine.FindStringSubmatch(text); m != nil {
			f[City] = strings.TrimSpace(m[1])
		}
	}
	if f[Phone] == "" {
		if m := anyPhone.FindStringSubmatch(text); m != nil {
			f[Phone] = m[1]
		}
	}
}

func postProcess(f Fields, text string) {
	brand := normalize.Brand(f[Model])
	if brand == "" {
		brand = normalize.Brand(text)
	}
	if brand == "" {
		brand = normalize.BrandBMW
	}
	f[Brand] = brand

	if v := f[Plate]; v != "" {
		f[Plate] = strings.ToUpper(strings.ReplaceAll(v, "-", ""))
	}
	if v := f[DocumentID]; v != "" {
		f[DocumentID] = normalize.DocumentID(v)
	}
	if v := f[City]; v != "" {
		v = cityTrailingC.ReplaceAllString(v, "")
		f[City] = strings.TrimSpace(cityJunk.ReplaceAllString(v, ""))
	}
	if v := f[Model]; v != "" {
		f[Model] = normalize.CleanModel(v)
	}
	if v := f[Color]; v != "" {
		f[Color] = normalize.Capitalize(v)
	}
	if v := f[Kilometers]; v != "" {
		f[Kilometers] = strings.NewReplacer(".", "", ",", "").Replace(v)
	}
	if v := f[FirstRegistration]; v != "" {
		f[FirstRegistration] = whitespace.ReplaceAllString(v, "")
	}
	if v := f[Phone]; v != "" {
		f[Phone] = whitespace.ReplaceAllString(v, "")
	}
	if v := f[OrderDate]; v != "" {
		if d, ok := normalize.Date(v); ok {
			f[OrderDate] = d.Format("02/01/2006")
		}
	}
	for _, k := range []string{Advisor, ClientName, Address, Province, PortalOrigin, Bank, Tomo} {
		f[k] = strings.TrimSpace(whitespace.ReplaceAllString(f[k], " "))
	}
}
