package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

type templateData struct {
	Email string
	Time  string
}

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

func mustTemplate(name, subject, body string) emailTemplate {
	return emailTemplate{
		subject: template.Must(template.New(name + "_subject").Parse(subject)),
		body:    template.Must(template.New(name + "_body").Parse(body)),
	}
}

var (
	operatorTemplate = mustTemplate("operator",
		"New newsdigest signup: {{.Email}}",
		`A new user has signed up for newsdigest.

Email: {{.Email}}
Time:  {{.Time}}
`)

	confirmationTemplate = mustTemplate("confirmation",
		"Welcome to newsdigest",
		`Hi,

thanks for signing up for newsdigest with {{.Email}}.

Every day we summarise the most important tech news for you. Read a
summary to earn points and keep your reading streak going.

If you did not sign up, you can ignore this email.

The newsdigest team
`)
)

func (t emailTemplate) render(data templateData) (subject, body string, err error) {
	var s, b bytes.Buffer
	if err := t.subject.Execute(&s, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := t.body.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return s.String(), b.String(), nil
}
