package mail

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer renders email bodies from the embedded template set. It is
// built once at startup and injected alongside the Sender.
type Renderer struct{ t *template.Template }

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Welcome renders the registration welcome email.
func (r *Renderer) Welcome(name string) (string, error) {
	return r.render("welcome.gohtml", map[string]string{"Name": name})
}

// PasswordReset renders the reset email around the one-time reset link.
func (r *Renderer) PasswordReset(name, resetURL string) (string, error) {
	return r.render("password_reset.gohtml", map[string]string{"Name": name, "ResetURL": resetURL})
}

func (r *Renderer) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
