package domain

import "time"

// MessageTypeEmail is the quota bucket used by the email pipeline.
const MessageTypeEmail = "EMAIL"

// QuotaAccount is a tenant's allowed message volume for one message type.
// Invariant: 0 <= Used <= Limit. The store increments Used with a single
// conditional update so concurrent campaigns converge to a correct total.
type QuotaAccount struct {
	TenantID    string
	MessageType string
	Limit       int64
	Used        int64
	UpdatedAt   time.Time
}

// Remaining returns the sends still allowed under the account's limit.
func (q QuotaAccount) Remaining() int64 {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}
