package view

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/forgo/guild/api/internal/model"
)

var testSite = Site{
	BaseURL:      "https://joinguild.app",
	AssetOrigin:  "https://assets.example.test",
	ContactEmail: "hello@joinguild.app",
	AnalyticsID:  "G-TEST",
	Year:         2026,
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// ===== Layout Tests =====

func renderLayout(site Site, body templ.Component) (string, error) {
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), body)
	err := Layout(site, Page{}).Render(ctx, &buf)
	return buf.String(), err
}

func TestLayout_DefaultsAndFooter(t *testing.T) {
	t.Parallel()

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})
	html, err := renderLayout(testSite, body)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	assertContains(t, html,
		"<title>Guild | Find Verified Contractors Near You</title>",
		`<link rel="canonical" href="https://joinguild.app/">`,
		`https://assets.example.test/storage/v1/object/public/Logo/og-image.png`,
		`<link rel="stylesheet" href="/static/site.css">`,
		`gtag/js?id=G-TEST`,
		`<script src="/static/analytics.js" data-analytics-id="G-TEST"></script>`,
		"<p>body</p>",
		`<a href="/#how">How It Works</a>`,
		`<a href="mailto:hello@joinguild.app">Contact</a>`,
		"&copy; 2026 Guild. All rights reserved.",
	)
	if strings.Index(html, "<p>body</p>") > strings.Index(html, "<footer") {
		t.Error("body must render before footer")
	}
	if strings.Contains(html, "<style>") {
		t.Error("stylesheet must be served from /static, not inlined")
	}
}

func TestLayout_NoAnalytics(t *testing.T) {
	t.Parallel()

	site := testSite
	site.AnalyticsID = ""
	html, err := renderLayout(site, templ.NopComponent)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(html, "googletagmanager") || strings.Contains(html, "analytics.js") {
		t.Error("analytics script rendered without an id")
	}
}

func TestLayout_EscapesAnalyticsID(t *testing.T) {
	t.Parallel()

	site := testSite
	site.AnalyticsID = `"><script>x</script>`
	html, err := renderLayout(site, templ.NopComponent)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(html, "<script>x</script>") {
		t.Error("analytics id rendered unescaped")
	}
}

func TestLayout_BodyErrorStops(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	body := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	html, err := renderLayout(testSite, body)
	if !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want boom", err)
	}
	if strings.Contains(html, "<footer") {
		t.Error("footer rendered after body failure")
	}
}

// ===== Static Tests =====

func TestStatic(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"site.css":       ".hero",
		"join.js":        "fetch('/api/waitlist'",
		"unsubscribe.js": "fetch('/api/unsubscribe'",
		"analytics.js":   "data-analytics-id",
	}
	for name, want := range tests {
		b, err := fs.ReadFile(Static(), name)
		if err != nil {
			t.Errorf("ReadFile(%q) error = %v", name, err)
			continue
		}
		if !strings.Contains(string(b), want) {
			t.Errorf("%s missing %q", name, want)
		}
	}
}

// ===== Page Tests =====

func TestLanding(t *testing.T) {
	t.Parallel()

	html := render(t, Landing(testSite, &model.SpotsSummary{Total: 1000, Taken: 1, Remaining: 999}))
	assertContains(t, html,
		`<form class="join" id="join"`,
		`name="zip_code"`,
		`<option value="contractor">`,
		`<script src="/static/join.js" defer></script>`,
		`id="problem"`, `id="how"`, `id="faq"`,
		"999 of 1,000 founding contractor spots left",
	)
}

func TestLanding_NoSpots(t *testing.T) {
	t.Parallel()

	html := render(t, Landing(testSite, nil))
	if strings.Contains(html, `id="spots"`) {
		t.Error("spots counter rendered without a summary")
	}
}

func TestPrivacy(t *testing.T) {
	t.Parallel()

	html := render(t, Privacy(testSite))
	assertContains(t, html,
		"<title>Privacy Policy | Guild</title>",
		"&larr; Back to home",
		"1. Information We Collect",
		"3. Data Sharing",
		"7. Contact Us",
		`<a href="mailto:hello@joinguild.app">hello@joinguild.app</a>`,
		`<link rel="canonical" href="https://joinguild.app/privacy">`,
	)
}

func TestUnsubscribe_InitialState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  UnsubscribeState
	}{
		{"no token shows error", "", UnsubscribeError},
		{"token starts loading", "123e4567-e89b-12d3-a456-426614174000", UnsubscribeLoading},
		{"malformed token still loads", "nope", UnsubscribeLoading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialUnsubscribeState(tt.token); got != tt.want {
				t.Errorf("InitialUnsubscribeState(%q) = %q, want %q", tt.token, got, tt.want)
			}
			html := render(t, Unsubscribe(testSite, tt.token))
			assertContains(t, html, `<div class="state" data-state="`+string(tt.want)+`">`)
			if n := strings.Count(html, `" hidden>`); n != len(unsubscribeBlocks)-1 {
				t.Errorf("%d hidden states, want %d", n, len(unsubscribeBlocks)-1)
			}
		})
	}
}

func TestUnsubscribe_Copy(t *testing.T) {
	t.Parallel()

	html := render(t, Unsubscribe(testSite, "123e4567-e89b-12d3-a456-426614174000"))
	assertContains(t, html,
		"Unsubscribing...",
		"You&#39;ve been unsubscribed",
		"Something went wrong",
		"&larr; Back to joinguild.app",
		`data-token="123e4567-e89b-12d3-a456-426614174000"`,
		`<script src="/static/unsubscribe.js" defer></script>`,
		`<meta name="robots" content="noindex, nofollow">`,
	)
}

func TestUnsubscribe_EscapesToken(t *testing.T) {
	t.Parallel()

	html := render(t, Unsubscribe(testSite, `"><script>alert(1)</script>`))
	if strings.Contains(html, "<script>alert(1)") {
		t.Error("token rendered unescaped")
	}
	assertContains(t, html, `data-token="&#34;&gt;&lt;script&gt;`)
}

func TestUnsubscribeURL(t *testing.T) {
	t.Parallel()

	got := UnsubscribeURL("https://joinguild.app", "abc def")
	if got != "https://joinguild.app/unsubscribe?token=abc+def" {
		t.Errorf("UnsubscribeURL() = %q", got)
	}
}

// ===== Email Tests =====

func TestWelcomeEmail(t *testing.T) {
	t.Parallel()

	token := "123e4567-e89b-12d3-a456-426614174000"
	link := "https://joinguild.app/unsubscribe?token=" + token

	tests := []struct {
		role model.SignupRole
		want string
	}{
		{model.RoleContractor, "founding contractor"},
		{model.RoleHomeowner, "post a job"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			email := WelcomeEmail{Site: testSite, Role: tt.role, Token: token}
			if email.Subject() == "" {
				t.Error("empty subject")
			}
			text := email.Text()
			assertContains(t, text, "Unsubscribe: "+link, tt.want)
			html := render(t, email.HTML())
			assertContains(t, html, `href="`+link+`"`, tt.want)
		})
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567"}
	for n, want := range tests {
		if got := FormatCount(n); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

// ===== Not Found Tests =====

func TestNotFound(t *testing.T) {
	t.Parallel()

	html := render(t, NotFound(testSite))
	assertContains(t, html,
		"<title>Page not found | Guild</title>",
		"<h1>Page not found</h1>",
		`<meta name="robots" content="noindex, nofollow">`,
		`<a href="/">&larr; Back to home</a>`,
	)
}
