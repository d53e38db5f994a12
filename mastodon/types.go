package mastodon

import "time"

// Account is the subset of the Mastodon account entity the bot needs.
type Account struct {
	ID          string `json:"id"`
	Acct        string `json:"acct"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bot         bool   `json:"bot"`
}

// Status is a Mastodon status (post). Content is HTML.
type Status struct {
	ID                 string    `json:"id"`
	URI                string    `json:"uri"`
	CreatedAt          time.Time `json:"created_at"`
	Account            Account   `json:"account"`
	Content            string    `json:"content"`
	Language           string    `json:"language"`
	Visibility         string    `json:"visibility"`
	InReplyToID        string    `json:"in_reply_to_id"`
	InReplyToAccountID string    `json:"in_reply_to_account_id"`
	Reblog             *Status   `json:"reblog"`
	Quote              *Status   `json:"quote"`
}

// Notification is delivered on the user stream; for mentions Status carries
// the post that mentioned us.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Account   Account   `json:"account"`
	Status    *Status   `json:"status"`
}

// Toot is an outbound status submission.
type Toot struct {
	Status      string `json:"status"`
	InReplyToID string `json:"in_reply_to_id,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	Language    string `json:"language,omitempty"`
}
