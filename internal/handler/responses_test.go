package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrPlayerNotFound, http.StatusNotFound, ErrMsgPlayerNotFoundError},
		{fmt.Errorf("%w: scene 12", domain.ErrOutOfRangeScene), http.StatusBadRequest, ErrMsgSceneOutOfRangeError},
		{domain.ErrWheelLocked, http.StatusConflict, ErrMsgWheelLockedError},
		{domain.ErrQuizNotFound, http.StatusNotFound, ErrMsgQuizNotFoundError},
		{domain.ErrQuizCompleted, http.StatusConflict, ErrMsgQuizCompletedError},
		{domain.ErrUnknownChoice, http.StatusBadRequest, ErrMsgUnknownChoiceError},
		{domain.ErrCaptureUnavailable, http.StatusConflict, ErrMsgCaptureUnavailableError},
		{domain.ErrCaptureNotActive, http.StatusConflict, ErrMsgCaptureNotActiveError},
		{domain.ErrPersistenceUnavailable, http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{fmt.Errorf("%w: read mq-stage", domain.ErrRestoreFailed), http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			status, message := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}
