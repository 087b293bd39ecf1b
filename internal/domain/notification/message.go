package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// Recipient is a (name, email) pair selected for notification.
type Recipient struct {
	Name  string
	Email string
}

// Delivery failure reasons carried on DeliveryResult.Reason. An empty reason
// means deliveries were attempted normally.
const (
	// ReasonNotConfigured marks a run where transport credentials were absent
	// and no delivery was attempted.
	ReasonNotConfigured = "smtp_not_configured"
)

// DeliveryResult aggregates per-recipient delivery outcomes for one run.
type DeliveryResult struct {
	Success int
	Failed  int
	Reason  string
}

// Message is a rendered notification ready for a transport to deliver.
type Message struct {
	To       Recipient
	Subject  string
	TextBody string
	HTMLBody string
}

const birthdayTextBody = `Happy Birthday {{.Name}}! 🎂

Wishing you a fantastic day filled with joy, laughter, and all the things you love!

May this year bring you success, happiness, and countless memorable moments.

Warm wishes,
The Birthday Team
`

const birthdayHTMLBody = `<html>
  <body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
      <h1 style="color: #FF6B6B; text-align: center;">🎉 Happy Birthday {{.Name}}! 🎉</h1>
      <p style="font-size: 16px; line-height: 1.6; color: #333;">
        Wishing you a <strong>fantastic day</strong> filled with joy, laughter, and all the things you love!
      </p>
      <p style="font-size: 16px; line-height: 1.6; color: #333;">
        May this year bring you success, happiness, and countless memorable moments. 🌟
      </p>
      <div style="margin-top: 30px; padding-top: 20px; border-top: 2px solid #FF6B6B; text-align: center; color: #666;">
        <p>Warm wishes,<br><strong>The Birthday Team</strong></p>
      </div>
    </div>
  </body>
</html>
`

var (
	birthdayTextTmpl = texttemplate.Must(texttemplate.New("birthday_text").Parse(birthdayTextBody))
	birthdayHTMLTmpl = htmltemplate.Must(htmltemplate.New("birthday_html").Parse(birthdayHTMLBody))
)

// ComposeBirthdayMessage renders the plain-text and HTML birthday greeting
// for the given recipient.
func ComposeBirthdayMessage(r Recipient) (Message, error) {
	data := struct{ Name string }{Name: r.Name}

	var text bytes.Buffer
	if err := birthdayTextTmpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("rendering text body: %w", err)
	}

	var html bytes.Buffer
	if err := birthdayHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("rendering html body: %w", err)
	}

	return Message{
		To:       r,
		Subject:  fmt.Sprintf("🎉 Happy Birthday %s!", r.Name),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
