package view

type policySection struct {
	Heading    string
	Paragraphs []string
	Items      []string
}

var privacySections = []policySection{
	{
		Heading:    "1. Information We Collect",
		Paragraphs: []string{"When you join the Guild waitlist, we collect:"},
		Items: []string{
			"Email address: to notify you when Guild launches in your area.",
			"ZIP code: to understand where demand exists and prioritize launch areas.",
			"Role: whether you are a homeowner or contractor, to tailor our communications.",
			"Usage data: anonymous analytics via PostHog and Google Analytics to improve our website.",
		},
	},
	{
		Heading:    "2. How We Use Your Information",
		Paragraphs: []string{"We use the information we collect to:"},
		Items: []string{
			"Send you updates about Guild's launch and availability in your area.",
			"Understand market demand across different regions.",
			"Improve our website and user experience.",
		},
	},
	{
		Heading: "3. Data Sharing",
		Paragraphs: []string{
			"We do not sell, trade, or rent your personal information to third parties. We use the following service providers to operate our platform:",
		},
		Items: []string{
			"Supabase: secure database hosting.",
			"Resend: email delivery.",
			"PostHog: product analytics.",
			"Google Analytics: website traffic analysis.",
			"Vercel: website hosting.",
		},
	},
	{
		Heading: "4. Cookies and Tracking",
		Paragraphs: []string{
			"We use cookies and similar technologies for analytics purposes. These help us understand how visitors interact with our website. You can disable cookies in your browser settings.",
		},
	},
	{
		Heading: "5. Data Security",
		Paragraphs: []string{
			"We implement industry-standard security measures to protect your data, including encryption in transit (HTTPS) and at rest. Access to personal data is restricted to authorized team members only.",
		},
	},
	{
		Heading:    "6. Your Rights",
		Paragraphs: []string{"You have the right to:"},
		Items: []string{
			"Request access to the personal data we hold about you.",
			"Request correction or deletion of your data.",
			"Unsubscribe from our emails at any time using the link in any email we send.",
		},
	},
}
