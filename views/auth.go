package views

import (
	"bytes"
	"fmt"

	"github.com/a-h/templ"
)

// Login renders the login form. email echoes back the submitted value
// after a failed attempt.
func Login(p Page, email string) templ.Component {
	return layout(p, PageMeta{Title: "Login"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="auth-page"><h1>Welcome back</h1>`)
		b.WriteString(`<form method="post" action="/login/" class="auth-form">`)
		b.WriteString(csrfField(p))
		field(b, "email", "email", "Email", email, true)
		field(b, "password", "password", "Password", "", true)
		b.WriteString(`<button type="submit">Log in</button></form>`)
		b.WriteString(`<p class="auth-alt"><a href="/password-reset/">Forgot password?</a> · No account? <a href="/register/">Sign up</a></p>`)
		b.WriteString("</section>")
	})
}

// RegisterForm holds echoed-back registration fields.
type RegisterForm struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Register renders the signup form.
func Register(p Page, f RegisterForm) templ.Component {
	return layout(p, PageMeta{Title: "Sign up"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="auth-page"><h1>Create your account</h1>`)
		b.WriteString(`<form method="post" action="/register/" class="auth-form">`)
		b.WriteString(csrfField(p))
		field(b, "text", "username", "Username", f.Username, true)
		field(b, "email", "email", "Email", f.Email, true)
		field(b, "text", "firstName", "First name", f.FirstName, false)
		field(b, "text", "lastName", "Last name", f.LastName, false)
		field(b, "password", "password", "Password", "", true)
		field(b, "password", "confirm", "Confirm password", "", true)
		b.WriteString(`<button type="submit">Sign up</button></form>`)
		b.WriteString(`<p class="auth-alt">Already registered? <a href="/login/">Log in</a></p>`)
		b.WriteString("</section>")
	})
}

// PasswordResetRequest renders the "email me a reset link" form.
func PasswordResetRequest(p Page, email string) templ.Component {
	return layout(p, PageMeta{Title: "Reset password"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="auth-page"><h1>Reset your password</h1>`)
		b.WriteString(`<p>Enter your email and we'll send you a reset link.</p>`)
		b.WriteString(`<form method="post" action="/password-reset/" class="auth-form">`)
		b.WriteString(csrfField(p))
		field(b, "email", "email", "Email", email, true)
		b.WriteString(`<button type="submit">Send reset link</button></form></section>`)
	})
}

// PasswordResetForm renders the new-password form behind a reset token.
func PasswordResetForm(p Page, token string) templ.Component {
	return layout(p, PageMeta{Title: "Choose a new password"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="auth-page"><h1>Choose a new password</h1>`)
		fmt.Fprintf(b, `<form method="post" action="/password-reset/%s/" class="auth-form">`, PathEscape(token))
		b.WriteString(csrfField(p))
		field(b, "password", "password", "New password", "", true)
		field(b, "password", "confirm", "Confirm password", "", true)
		b.WriteString(`<button type="submit">Set password</button></form></section>`)
	})
}

func field(b *bytes.Buffer, typ, name, label, value string, required bool) {
	req := ""
	if required {
		req = " required"
	}
	fmt.Fprintf(b, `<label>%s<input type="%s" name="%s" value="%s"%s></label>`,
		esc(label), typ, name, esc(value), req)
}
