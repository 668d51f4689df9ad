package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/report"
)

// utf8BOM makes Word detect the encoding of the HTML document.
var utf8BOM = []byte("\xef\xbb\xbf")

const officeHead = `<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>`

var recordsTemplate = template.Must(template.New("records").Parse(officeHead + `
<head><meta charset='utf-8'><title>{{.Title}}</title></head>
<body>
  <h1>{{.Title}}</h1>
  <p>Generado: {{.Generated}}</p>
  <table style="width:100%; border-collapse: collapse; font-family: Arial, sans-serif;">
    <thead style="background-color: #f0f0f0; font-weight: bold;">
      <tr>{{range .Headers}}<th style="border:1px solid #000; padding: 5px;">{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
      {{range .Rows}}<tr>{{range .}}<td style="border:1px solid #000; padding: 5px;">{{.Value}}</td>{{end}}</tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>
`))

var reportTemplate = template.Must(template.New("report").Parse(officeHead + `
<head><meta charset='utf-8'><title>{{.Title}}</title></head>
<body>
  <div style="text-align: center; font-family: Arial, sans-serif;">
    <div style="margin: 0 auto; width: 60px; height: 60px; background-color: #2563eb; color: white; border-radius: 10px; font-weight: bold;">{{.Logo}}</div>
    <br/>
    <h1 style="font-size: 18pt; margin-bottom: 5px; color: #000;">{{.Profile.Name}}</h1>
    <h2 style="font-size: 14pt; font-weight: normal; margin: 5px 0; color: #333;">{{.Profile.Region}}</h2>
    <br/>
    <h2 style="font-size: 16pt; font-weight: bold; text-decoration: underline; color: #000;">{{.Title}}</h2>
    <p style="font-size: 12pt; font-style: italic;">Periodo: {{.Period}}</p>
    <hr style="border: 1px solid #ccc;"/>
  </div>

  <div style="font-family: 'Times New Roman', serif; font-size: 12pt; line-height: 1.5; margin: 40px 20px; text-align: justify;">
    {{.Body}}
  </div>

  <br/><br/><br/>
  <div style="text-align: center; font-family: Arial, sans-serif; margin-top: 50px;">
    <p style="font-weight: bold; margin: 0;">Responsable: {{.Profile.Responsible}}</p>
    <p style="margin: 0;">({{.Profile.ResponsibleRole}})</p>
  </div>
</body>
</html>
`))

func wordDocument(filename string, tmpl *template.Template, data any) (Document, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	if err := tmpl.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("render word document: %w", err)
	}
	return Document{Filename: filename, ContentType: ContentTypeWord, Content: buf.Bytes()}, nil
}

// RecordsWord renders records as a table. The header row comes from the
// first record's field names; an empty list gives an empty header.
func RecordsWord(title string, records []Record, generatedAt time.Time) (Document, error) {
	var headers []string
	if len(records) > 0 {
		for _, f := range records[0] {
			headers = append(headers, f.Name)
		}
	}
	return wordDocument(Filename(title, "doc"), recordsTemplate, struct {
		Title     string
		Generated string
		Headers   []string
		Rows      []Record
	}{title, Timestamp(generatedAt), headers, records})
}

// ReportWord renders the report as a letter. The body is treated as
// Markdown; raw HTML in it is not passed through.
func ReportWord(profile domain.Profile, r report.Report) (Document, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(r.Text), &body); err != nil {
		return Document{}, fmt.Errorf("render report body: %w", err)
	}
	top, _ := logoLabels(profile)
	return wordDocument(ReportFilename+".doc", reportTemplate, struct {
		Profile domain.Profile
		Logo    string
		Title   string
		Period  string
		Body    template.HTML
	}{profile, top, r.Title, r.Period.Label, template.HTML(body.String())})
}
