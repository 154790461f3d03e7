package share

import (
	"strings"

	"leedz/internal/entity"
	"leedz/shared/failure"
)

// recipientColors cycle across the list so adjacent chips stay visually
// distinct.
var recipientColors = []string{"teal", "plum", "amber", "sage", "coral", "slate"}

// Recipient is one selectable address chip.
type Recipient struct {
	Email    string `json:"email"`
	Color    string `json:"color"`
	Selected bool   `json:"selected"`
}

// RecipientList is the share screen's address book: friends load unselected,
// manually added addresses arrive pre-selected.
type RecipientList struct {
	recipients []*Recipient
}

func NewRecipientList() *RecipientList {
	return &RecipientList{}
}

// LoadFriends seeds the list from the persisted friends field. Existing
// entries keep their selection.
func (l *RecipientList) LoadFriends(friends []string) {
	for _, friend := range friends {
		l.add(friend, false)
	}
}

// Add validates and appends a manual address, pre-selected.
func (l *RecipientList) Add(email string) error {
	email = strings.TrimSpace(email)
	if !entity.ValidEmail(email) {
		return failure.BadRequestFromString("not a valid email address: " + email)
	}

	l.add(email, true)

	return nil
}

func (l *RecipientList) add(email string, selected bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return
	}

	for _, existing := range l.recipients {
		if strings.EqualFold(existing.Email, email) {
			if selected {
				existing.Selected = true
			}

			return
		}
	}

	l.recipients = append(l.recipients, &Recipient{
		Email:    email,
		Color:    recipientColors[len(l.recipients)%len(recipientColors)],
		Selected: selected,
	})
}

// Toggle flips one address's selection.
func (l *RecipientList) Toggle(email string) bool {
	for _, recipient := range l.recipients {
		if strings.EqualFold(recipient.Email, email) {
			recipient.Selected = !recipient.Selected

			return true
		}
	}

	return false
}

// Selected returns the chosen addresses in list order.
func (l *RecipientList) Selected() []string {
	var selected []string

	for _, recipient := range l.recipients {
		if recipient.Selected {
			selected = append(selected, recipient.Email)
		}
	}

	return selected
}

// All returns the full list in order.
func (l *RecipientList) All() []*Recipient {
	return l.recipients
}
