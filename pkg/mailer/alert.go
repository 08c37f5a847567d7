package mailer

import (
	"bytes"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

// AlertData feeds the audit alert templates.
type AlertData struct {
	AppName   string
	LogID     int64
	Severity  string
	Message   string
	User      string
	Timestamp time.Time
}

var alertFuncs = map[string]any{
	"ts": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05 UTC") },
	"actor": func(u string) string {
		if strings.TrimSpace(u) == "" {
			return "unknown"
		}
		return u
	},
}

const alertSubject = `[{{.AppName}}] {{.Severity}} audit log #{{.LogID}}`

const alertText = `A {{.Severity}} entry was written to the audit log.

Log:     #{{.LogID}}
Time:    {{ts .Timestamp}}
User:    {{actor .User}}
Message: {{.Message}}
`

const alertHTML = `<p>A <strong>{{.Severity}}</strong> entry was written to the audit log.</p>
<table>
<tr><td>Log</td><td>#{{.LogID}}</td></tr>
<tr><td>Time</td><td>{{ts .Timestamp}}</td></tr>
<tr><td>User</td><td>{{actor .User}}</td></tr>
<tr><td>Message</td><td>{{.Message}}</td></tr>
</table>
`

var (
	subjectTpl = texttpl.Must(texttpl.New("subject").Funcs(texttpl.FuncMap(alertFuncs)).Parse(alertSubject))
	textTpl    = texttpl.Must(texttpl.New("text").Funcs(texttpl.FuncMap(alertFuncs)).Parse(alertText))
	htmlTpl    = htmpl.Must(htmpl.New("html").Funcs(htmpl.FuncMap(alertFuncs)).Parse(alertHTML))
)

// RenderAlert renders subject, plain text and HTML bodies for an alert mail.
func RenderAlert(d AlertData) (subject, text, html string, err error) {
	var buf bytes.Buffer
	if err = subjectTpl.Execute(&buf, d); err != nil {
		return "", "", "", err
	}
	subject = buf.String()

	buf.Reset()
	if err = textTpl.Execute(&buf, d); err != nil {
		return "", "", "", err
	}
	text = buf.String()

	buf.Reset()
	if err = htmlTpl.Execute(&buf, d); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
