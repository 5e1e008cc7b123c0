package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

// ToneSource renders a token's note as a WAV file
type ToneSource interface {
	Get(token domain.RewardToken) ([]byte, error)
}

// HandleTone serves /tones/{token}.wav
func HandleTone(tones ToneSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := domain.ParseRewardToken(strings.ToUpper(chi.URLParam(r, "token")))
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgInvalidToken)
			return
		}
		data, err := tones.Get(token)
		if err != nil {
			respondServiceError(w, r, "Render tone", err)
			return
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
