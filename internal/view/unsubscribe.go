package view

import "net/url"

// UnsubscribeState is the visible state of the unsubscribe page
type UnsubscribeState string

const (
	UnsubscribeLoading UnsubscribeState = "loading"
	UnsubscribeSuccess UnsubscribeState = "success"
	UnsubscribeError   UnsubscribeState = "error"
)

// InitialUnsubscribeState is error without a token, loading otherwise.
// The page script moves loading to success or error.
func InitialUnsubscribeState(token string) UnsubscribeState {
	if token == "" {
		return UnsubscribeError
	}
	return UnsubscribeLoading
}

// UnsubscribeURL builds the link placed in every email
func UnsubscribeURL(baseURL, token string) string {
	return baseURL + "/unsubscribe?token=" + url.QueryEscape(token)
}

type unsubscribeBlock struct {
	State   UnsubscribeState
	Heading string
	Body    string
	Link    bool
}

var unsubscribeBlocks = []unsubscribeBlock{
	{UnsubscribeLoading, "Unsubscribing...", "Just a moment.", false},
	{UnsubscribeSuccess, "You've been unsubscribed", "You won't receive any more emails from us. Your waitlist spot is still safe — we'll never remove you.", true},
	{UnsubscribeError, "Something went wrong", "We couldn't process your unsubscribe request. The link may be invalid or expired.", true},
}
