package newsletter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/mvidali/newsbrief/internal/domain"
)

// Renderer turns a ranked digest into a ready-to-send email.
type Renderer struct {
	template *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("newsletter").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse newsletter template: %w", err)
	}
	return &Renderer{template: tmpl}, nil
}

// Email is a rendered digest ready for the sender.
type Email struct {
	Subject   string
	HTMLBody  string
	PlainBody string
}

type templateData struct {
	Greeting string
	Date     string
	Items    []itemData
}

type itemData struct {
	Title       string
	Description string
	URL         string
	Source      string
	TopicName   string
}

// Render builds the multipart email for one user's digest. Empty digests are
// rejected here: the caller decides whether "nothing new" mail exists at all.
func (r *Renderer) Render(user domain.User, d *domain.Digest) (*Email, error) {
	if d.IsEmpty() {
		return nil, fmt.Errorf("no items to include in newsletter")
	}

	data := templateData{
		Greeting: user.DisplayName(),
		Date:     d.GeneratedAt.Format("Monday, 2 January 2006"),
		Items:    make([]itemData, len(d.Items)),
	}
	for i, item := range d.Items {
		topicName := item.TopicName
		if topicName == "" {
			topicName = "Generale"
		}
		data.Items[i] = itemData{
			Title:       item.Content.Title,
			Description: item.Content.Description,
			URL:         item.Content.URL,
			Source:      item.Content.Source,
			TopicName:   topicName,
		}
	}

	var htmlBuf bytes.Buffer
	if err := r.template.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render newsletter template: %w", err)
	}

	return &Email{
		Subject:   fmt.Sprintf("La tua newsletter personalizzata - %s", d.GeneratedAt.Format("02/01/2006")),
		HTMLBody:  htmlBuf.String(),
		PlainBody: buildPlainText(data),
	}, nil
}

func buildPlainText(data templateData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Ciao %s!\n", data.Greeting))
	buf.WriteString("Ecco i contenuti selezionati per te in base ai tuoi interessi:\n\n")

	for i, item := range data.Items {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, item.Title, item.TopicName))
		if item.URL != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", item.URL))
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>La tua newsletter personalizzata</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; }
        .container { background: white; border-radius: 8px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; padding-bottom: 20px; border-bottom: 2px solid #e9ecef; }
        .header h1 { color: #2563eb; margin: 0; font-size: 28px; }
        .greeting { font-size: 18px; margin-bottom: 25px; color: #495057; }
        .content-item { margin-bottom: 25px; padding: 20px; border: 1px solid #e9ecef; border-radius: 6px; background: #fafbfc; }
        .content-item h3 { margin: 0 0 10px 0; font-size: 18px; }
        .content-item h3 a { color: #2563eb; text-decoration: none; }
        .content-item p { margin: 0 0 10px 0; color: #6c757d; }
        .source { font-size: 12px; color: #868e96; font-style: italic; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #e9ecef; text-align: center; color: #868e96; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>&#128240; La tua newsletter personalizzata</h1>
            <p>{{.Date}}</p>
        </div>

        <div class="greeting">
            Ciao {{.Greeting}}! &#128075;<br>
            Ecco i contenuti selezionati appositamente per te in base ai tuoi interessi:
        </div>

        {{range .Items}}
        <div class="content-item">
            <h3><a href="{{.URL}}" target="_blank">{{.Title}}</a></h3>
            <p>{{.Description}}</p>
            <div class="source">Fonte: {{.Source}} &bull; {{.TopicName}}</div>
        </div>
        {{end}}

        <div class="footer">
            <p>Questa newsletter &egrave; stata generata automaticamente in base ai tuoi interessi.</p>
            <p>Per modificare le tue preferenze o annullare l'iscrizione, visita il tuo profilo.</p>
        </div>
    </div>
</body>
</html>`
