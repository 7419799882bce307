package models

type PersonStatus string

const (
	PersonPending  PersonStatus = "pending"
	PersonApproved PersonStatus = "approved"
	PersonRejected PersonStatus = "rejected"
	PersonMember   PersonStatus = "member"
	PersonFree     PersonStatus = "free"
)

func (s PersonStatus) IsValid() bool {
	switch s {
	case PersonPending, PersonApproved, PersonRejected, PersonMember, PersonFree:
		return true
	}
	return false
}

type Person struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	InstagramHandle string       `json:"instagram_handle,omitempty"`
	TelegramHandle  string       `json:"telegram_handle,omitempty"`
	Status          PersonStatus `json:"status"` // pending, approved, rejected, member, free
	AvatarURL       string       `json:"avatar_url,omitempty"`
}
