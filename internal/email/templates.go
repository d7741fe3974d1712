package email

import (
	"fmt"
	"html/template"
	"strings"
)

// ConnectionAcceptedData данные письма о принятом обмене.
type ConnectionAcceptedData struct {
	RecipientName       string
	CounterpartName     string
	CounterpartEmail    string
	CounterpartLocation string
	YouCanTeach         []string
	TheyCanTeach        []string
	ProfileURL          string
}

const connectionAcceptedSubject = "SkillSwapper: обмен навыками с %s подтверждён"

var connectionAcceptedTemplate = template.Must(template.New("connection_accepted").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Здравствуйте, {{.RecipientName}}!</h2>
  <p>Обмен навыками с <strong>{{.CounterpartName}}</strong> подтверждён. Свяжитесь друг с другом, чтобы договориться о занятиях.</p>
  <h3>Контакты</h3>
  <ul>
    <li>Email: <a href="mailto:{{.CounterpartEmail}}">{{.CounterpartEmail}}</a></li>
    {{if .CounterpartLocation}}<li>Город: {{.CounterpartLocation}}</li>{{end}}
  </ul>
  {{if .YouCanTeach}}
  <h3>Вы можете научить</h3>
  <ul>{{range .YouCanTeach}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .TheyCanTeach}}
  <h3>Вы можете научиться</h3>
  <ul>{{range .TheyCanTeach}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .ProfileURL}}<p><a href="{{.ProfileURL}}">Открыть профиль</a></p>{{end}}
</body>
</html>
`))

// RenderConnectionAccepted возвращает тему и HTML письма о принятом обмене.
func RenderConnectionAccepted(data ConnectionAcceptedData) (string, string, error) {
	var buf strings.Builder
	if err := connectionAcceptedTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("email: шаблон connection_accepted: %w", err)
	}

	return fmt.Sprintf(connectionAcceptedSubject, data.CounterpartName), buf.String(), nil
}
