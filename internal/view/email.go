package view

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/forgo/guild/api/internal/model"
)

// WelcomeEmail is the message sent once to every new signup
type WelcomeEmail struct {
	Site  Site
	Role  model.SignupRole
	Token string
}

// Subject line
func (e WelcomeEmail) Subject() string {
	return "You're on the Guild waitlist"
}

// UnsubscribeURL is the one-click link for this recipient
func (e WelcomeEmail) UnsubscribeURL() string {
	return UnsubscribeURL(e.Site.BaseURL, e.Token)
}

func (e WelcomeEmail) paragraphs() []string {
	intro := "Thanks for joining the Guild waitlist. We'll email you as soon as Guild opens in your area."
	switch e.Role {
	case model.RoleContractor:
		return []string{
			intro,
			"As a founding contractor you lock in member pricing for life. No lead fees and no commissions, ever.",
		}
	default:
		return []string{
			intro,
			"When we launch you'll be able to post a job and get matched with verified, licensed pros near you.",
		}
	}
}

// Text is the plain-text body
func (e WelcomeEmail) Text() string {
	var b strings.Builder
	b.WriteString("Welcome to Guild!\n\n")
	for _, p := range e.paragraphs() {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString("Questions? Reply to this email or write to ")
	b.WriteString(e.Site.ContactEmail)
	b.WriteString(".\n\n")
	b.WriteString("Unsubscribe: ")
	b.WriteString(e.UnsubscribeURL())
	b.WriteString("\n")
	return b.String()
}

// HTML is the rich body
func (e WelcomeEmail) HTML() templ.Component {
	return welcomeHTML(e)
}
