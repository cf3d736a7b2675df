package domain

import "time"

type NoticePriority string

const (
	NoticeLow    NoticePriority = "LOW"
	NoticeMedium NoticePriority = "MEDIUM"
	NoticeHigh   NoticePriority = "HIGH"
	NoticeUrgent NoticePriority = "URGENT"
)

func (p NoticePriority) Valid() bool {
	switch p {
	case NoticeLow, NoticeMedium, NoticeHigh, NoticeUrgent:
		return true
	}
	return false
}

// Notice is an announcement posted by the society admin.
type Notice struct {
	ID         string         `json:"id" bson:"_id"`
	Title      string         `json:"title" bson:"title"`
	Content    string         `json:"content" bson:"content"`
	Priority   NoticePriority `json:"priority" bson:"priority"`
	PostedBy   string         `json:"posted_by,omitempty" bson:"posted_by,omitempty"`
	PostedDate time.Time      `json:"posted_date" bson:"posted_date"`
	ExpiryDate *time.Time     `json:"expiry_date,omitempty" bson:"expiry_date,omitempty"`
	Image      string         `json:"image,omitempty" bson:"image,omitempty"`
	IsActive   bool           `json:"is_active" bson:"is_active"`
}

// Current reports whether the notice should be shown at time now. The
// expiry date is inclusive: a notice expiring today is still shown.
func (n *Notice) Current(now time.Time) bool {
	if !n.IsActive {
		return false
	}
	return n.ExpiryDate == nil || now.Before(n.ExpiryDate.AddDate(0, 0, 1))
}
