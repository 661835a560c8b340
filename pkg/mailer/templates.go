package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

// Notification templates rendered by the email worker. Data keys come
// from the EmailJob payload (Name, Email, Time, Username).
const (
	TemplateWelcome           = "welcome"
	TemplateLoginNotification = "login_notification"
	TemplateProfileUpdated    = "profile_updated"
)

var subjects = map[string]string{
	TemplateWelcome:           "Welcome to your new account",
	TemplateLoginNotification: "New login to your account",
	TemplateProfileUpdated:    "Your profile was updated",
}

var textBodies = map[string]string{
	TemplateWelcome:           "Hi {{.Name}},\n\nYour account {{.Username}} was created successfully. You can now log in with {{.Email}}.\n",
	TemplateLoginNotification: "Hi {{.Name}},\n\nYour account {{.Email}} was signed in at {{.Time}}. If this was not you, change your password immediately.\n",
	TemplateProfileUpdated:    "Hi {{.Name}},\n\nYour profile was updated at {{.Time}}. If you did not make this change, contact support.\n",
}

var htmlBodies = map[string]string{
	TemplateWelcome:           `<p>Hi {{.Name}},</p><p>Your account <strong>{{.Username}}</strong> was created successfully. You can now log in with {{.Email}}.</p>`,
	TemplateLoginNotification: `<p>Hi {{.Name}},</p><p>Your account {{.Email}} was signed in at {{.Time}}. If this was not you, change your password immediately.</p>`,
	TemplateProfileUpdated:    `<p>Hi {{.Name}},</p><p>Your profile was updated at {{.Time}}. If you did not make this change, contact support.</p>`,
}

// Render produces subject, text, and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	tt, err := texttemplate.New(name).Parse(textBodies[name])
	if err != nil {
		return "", "", "", err
	}
	var tb bytes.Buffer
	if err := tt.Execute(&tb, data); err != nil {
		return "", "", "", err
	}

	ht, err := template.New(name).Parse(htmlBodies[name])
	if err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err := ht.Execute(&hb, data); err != nil {
		return "", "", "", err
	}

	return subject, tb.String(), hb.String(), nil
}
