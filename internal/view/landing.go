package view

type faqEntry struct {
	Question string
	Answer   string
}

var faqs = []faqEntry{
	{"Is Guild free for homeowners?", "Yes. Posting a job and getting matched costs homeowners nothing."},
	{"How do contractors pay?", "A flat membership. No lead fees and no commission on the jobs you win."},
	{"How are contractors verified?", "We check state licensing and insurance before a pro can take jobs."},
	{"What is a founding spot?", "The first contractors to join lock in founding member pricing for life."},
	{"When does Guild launch?", "We are opening city by city. Join the waitlist and we will email you when your ZIP code is live."},
}

var howItWorks = []string{
	"Describe the job and your ZIP code.",
	"We match you with verified contractors nearby.",
	"Talk directly. Hire who you like. No middleman fees.",
}
