package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

type emailContent struct {
	Title      string
	SenderName string
}

// html/template escapes every interpolated value for its HTML context.
var emailTemplate = template.Must(template.New("notification").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.5; color: #111827;">
  <h2 style="margin: 0 0 12px;">{{.Title}}</h2>
  <p style="margin: 0 0 12px;">{{.SenderName}} sent you a new notification.</p>
  <p style="margin: 0; color: #6b7280;">Open the app to view the details.</p>
</div>`))

func renderEmail(content emailContent) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, content); err != nil {
		return "", fmt.Errorf("failed to render notification email: %w", err)
	}
	return buf.String(), nil
}
