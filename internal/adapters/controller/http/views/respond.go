package views

import (
	"errors"
	"net/http"

	"github.com/Badsnus/cu-clubs-web/internal/domain/common/errorz"
	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/gin-gonic/gin"
)

var statuses = []struct {
	err    error
	status int
}{
	{errorz.ErrForbidden, http.StatusForbidden},
	{errorz.ErrUserBanned, http.StatusForbidden},
	{errorz.ErrInvalidCredentials, http.StatusUnauthorized},
	{errorz.ErrInvalidSession, http.StatusUnauthorized},
	{errorz.ErrSessionRevoked, http.StatusUnauthorized},

	{errorz.ErrClubNotFound, http.StatusNotFound},
	{errorz.ErrEventNotFound, http.StatusNotFound},
	{errorz.ErrParticipationNotFound, http.StatusNotFound},
	{errorz.ErrUserNotFound, http.StatusNotFound},

	{errorz.ErrAlreadyEnrolled, http.StatusConflict},
	{errorz.ErrRegistrationClosed, http.StatusConflict},
	{errorz.ErrEventFull, http.StatusConflict},
	{errorz.ErrEventNotStarted, http.StatusConflict},

	{errorz.ErrInvalidStatus, http.StatusBadRequest},
	{errorz.ErrNoReportRecipient, http.StatusBadRequest},
	{errorz.ErrInvalidRating, http.StatusBadRequest},
	{errorz.ErrInvalidSummary, http.StatusBadRequest},
	{errorz.ErrInvalidAttachment, http.StatusBadRequest},
	{errorz.ErrAttachmentTooBig, http.StatusRequestEntityTooLarge},
}

// Status maps domain errors to HTTP status codes. Anything unknown is a 500.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Message is the text shown to the user for err. Internal errors are not
// exposed.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "Something went wrong, please try again later"
	}
	return capitalize(err.Error())
}

func JSONError(c *gin.Context, err error) {
	c.JSON(Status(err), dto.Fail(Message(err)))
}

func PageError(c *gin.Context, err error) {
	Error(c, Status(err), Message(err))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
