package validator

import (
	"net/mail"
	"strings"

	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
)

func Email(email string) bool {
	address, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <a@b>", forms must carry the bare address
	return address.Address == strings.TrimSpace(email)
}

func Password(password string) bool {
	return len(password) >= 6 && len(password) <= 72
}

func ParticipationStatus(status string) bool {
	switch entity.ParticipationStatus(status) {
	case entity.ParticipationApproved, entity.ParticipationRejected, entity.ParticipationPending:
		return true
	default:
		return false
	}
}
