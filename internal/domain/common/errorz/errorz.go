package errorz

import "errors"

var (
	ErrForbidden = errors.New("forbidden")

	ErrClubNotFound          = errors.New("club not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrUserNotFound          = errors.New("user not found")

	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrEventFull          = errors.New("event is full")
	ErrInvalidStatus      = errors.New("invalid participation status")

	ErrEventNotStarted   = errors.New("event has not started yet")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidSummary    = errors.New("summary must be between 10 and 2000 characters")
	ErrInvalidAttachment = errors.New("attachment must be an image")
	ErrAttachmentTooBig  = errors.New("attachment is too big")

	ErrNoReportRecipient = errors.New("no report recipient given and no default configured")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBanned         = errors.New("user is banned")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionRevoked     = errors.New("session revoked")
)
