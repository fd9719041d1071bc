package models

import "time"

// Label is the single application-level classification assigned to one message.
type Label string

const (
	LabelSpam       Label = "SPAM"
	LabelPromotions Label = "PROMOTIONS"
	LabelSocial     Label = "SOCIAL"
	LabelUpdates    Label = "UPDATES"
	LabelForums     Label = "FORUMS"
	LabelImportant  Label = "IMPORTANT"
	LabelStarred    Label = "STARRED"
	LabelSent       Label = "SENT"
	LabelDraft      Label = "DRAFT"
	LabelInbox      Label = "INBOX"
)

// PartitionQuery selects one named subset of a mailbox. Selector is the
// provider-specific filter expression; Tag is the logical partition name.
type PartitionQuery struct {
	Selector string `yaml:"selector" json:"selector"`
	Tag      string `yaml:"tag" json:"tag"`
}

// RawMessageRef is the lightweight handle returned by a partition listing,
// before detail retrieval.
type RawMessageRef struct {
	ID           string
	PartitionTag string
}

// Header is one raw message header field.
type Header struct {
	Name  string
	Value string
}

// RawMessageDetail is the provider-neutral shape of one fetched message.
type RawMessageDetail struct {
	ID      string
	Headers []Header
	// Markers are the provider's raw category/state markers (Gmail label
	// ids, or their synthesized equivalents for other providers).
	Markers []string
	Snippet string
	// InternalDate is the provider-internal timestamp in milliseconds
	// since the epoch, 0 when unknown.
	InternalDate int64
	// ReceivedAt is the provider's receive time, zero when unknown.
	ReceivedAt time.Time
}

// Email is one entry of the merged feed. Emails are constructed fresh on
// every fetch cycle and never mutated afterwards. ID is unique per provider;
// the (Account, ID) pair is the global key.
type Email struct {
	ID          string    `json:"id"`
	Account     string    `json:"account"`
	Subject     string    `json:"subject"`
	From        string    `json:"from"`
	SenderName  string    `json:"senderName"`
	SenderEmail string    `json:"senderEmail"`
	Date        time.Time `json:"date"`
	Snippet     string    `json:"snippet"`
	Label       Label     `json:"label"`
	IsRead      bool      `json:"isRead"`
	IsSpam      bool      `json:"isSpam"`
}
