package export

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DocumentTitle heads every rendered checklist.
	DocumentTitle = "Checklist EPI / EPC / Ferramental"
	// FileStem is the base filename of downloaded documents.
	FileStem = "checklist_epi_epc_ferramental"
	// SignaturePrompt is printed next to each signature line.
	SignaturePrompt = "Assinatura: _____________________________"
	// TimestampLayout formats the Data/Hora header field.
	TimestampLayout = "02/01/2006 15:04:05"

	modeVehicle = "VIATURA"
	sectorObras = "OBRAS"
	classRural  = "RURAL"
)

// Columns are the table headings of the printed formats.
var Columns = []string{"Tipo", "Descrição", "Qtde encontrada", "Observação"}

// SpreadsheetColumns are the unaccented headings of the XLSX and CSV
// formats. Downstream tooling matches them literally.
var SpreadsheetColumns = []string{"Tipo", "Descricao", "Qtde encontrada", "Observacao"}

var spreadsheetLabels = strings.NewReplacer(
	"Descrição", "Descricao",
	"Observação", "Observacao",
	"Responsável:", "Responsavel:",
)

// InfoField is a labelled header value.
type InfoField struct {
	Label string
	Value string
}

// Text joins label and value, dropping the value when blank.
func (f InfoField) Text() string {
	value := strings.TrimSpace(f.Value)
	if value == "" {
		return f.Label
	}
	if f.Label == "" {
		return value
	}
	return f.Label + " " + value
}

// InfoLine is one header line made of a left and an optional right field.
type InfoLine struct {
	Left  InfoField
	Right InfoField
}

// Text renders the line as a single string.
func (l InfoLine) Text() string {
	right := l.Right.Text()
	if right == "" {
		return l.Left.Text()
	}
	return l.Left.Text() + "    " + right
}

// Row is one table line.
type Row struct {
	Category    string
	Description string
	Found       *int
	Note        string
}

// FoundText renders the found quantity, blank when unset.
func (r Row) FoundText() string {
	if r.Found == nil {
		return ""
	}
	return strconv.Itoa(*r.Found)
}

// Signature is a name line followed by SignaturePrompt.
type Signature struct {
	Label string
	Name  string
}

// Text renders "<label> <name>".
func (s Signature) Text() string {
	return InfoField{Label: s.Label, Value: s.Name}.Text()
}

// Document is the format-agnostic content every renderer consumes.
type Document struct {
	Title      string
	Info       []InfoLine
	Columns    []string
	Rows       []Row
	Signatures []Signature
	FileStem   string
}

// SpreadsheetLabels returns a copy of d with the unaccented labels of the
// spreadsheet formats. Values are left untouched.
func (d Document) SpreadsheetLabels() Document {
	out := d
	out.Columns = make([]string, len(d.Columns))
	for i, label := range d.Columns {
		out.Columns[i] = spreadsheetLabels.Replace(label)
	}
	out.Info = make([]InfoLine, len(d.Info))
	for i, line := range d.Info {
		line.Left.Label = spreadsheetLabels.Replace(line.Left.Label)
		line.Right.Label = spreadsheetLabels.Replace(line.Right.Label)
		out.Info[i] = line
	}
	out.Signatures = make([]Signature, len(d.Signatures))
	for i, sig := range d.Signatures {
		sig.Label = spreadsheetLabels.Replace(sig.Label)
		out.Signatures[i] = sig
	}
	return out
}

// Filename returns the download name for the given extension.
func (d Document) Filename(ext string) string {
	stem := d.FileStem
	if stem == "" {
		stem = FileStem
	}
	return stem + "." + strings.TrimPrefix(ext, ".")
}

// ChecklistInput carries the header selections and rows of one checklist.
type ChecklistInput struct {
	Sector       string
	Mode         string
	TeamClass    string
	TeamCode     string
	Electrician1 string
	Electrician2 string
	Collaborator string
	Responsible  string
	Rows         []Row
}

// BuildChecklistDocument assembles the document for a checklist. now is
// printed as-is, so callers convert it to the display timezone first.
func BuildChecklistDocument(in ChecklistInput, now time.Time) Document {
	obrasVehicle := in.Mode == modeVehicle && in.Sector == sectorObras

	kind := "Colaborador"
	if in.Mode == modeVehicle {
		kind = "Viatura"
		if obrasVehicle {
			kind = "Caminhão"
		}
	}
	class := "Atendimento urbano"
	if in.TeamClass == classRural {
		class = "Atendimento rural"
	}

	identity := InfoLine{
		Left:  InfoField{Label: "Eletricista 1:", Value: in.Electrician1},
		Right: InfoField{Label: "Eletricista 2:", Value: in.Electrician2},
	}
	if obrasVehicle {
		identity = InfoLine{Left: InfoField{Label: "Encarregado:", Value: in.Electrician1}}
	}

	rows := make([]Row, len(in.Rows))
	copy(rows, in.Rows)

	return Document{
		Title: DocumentTitle,
		Info: []InfoLine{
			{
				Left:  InfoField{Label: "Tipo de checklist:", Value: kind},
				Right: InfoField{Label: "Data/Hora:", Value: now.Format(TimestampLayout)},
			},
			{
				Left:  InfoField{Label: "Equipe:", Value: in.TeamCode},
				Right: InfoField{Label: "Tipo de equipe:", Value: class},
			},
			identity,
			{
				Left:  InfoField{Label: "Colaborador:", Value: in.Collaborator},
				Right: InfoField{Label: "Responsável:", Value: in.Responsible},
			},
		},
		Columns: append([]string{}, Columns...),
		Rows:    rows,
		Signatures: []Signature{
			{Label: "Colaborador / Equipe:", Name: firstNonBlank(in.Collaborator, in.Electrician1, in.TeamCode)},
			{Label: "Responsável:", Name: in.Responsible},
		},
		FileStem: FileStem,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
