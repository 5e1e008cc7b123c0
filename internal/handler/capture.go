package handler

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/osse101/MelodyQuest_Go/internal/capture"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// MaxFrameBytes caps an uploaded camera frame
const MaxFrameBytes = 8 << 20

// CaptureResponse reports the scene's scan state
type CaptureResponse struct {
	Message  string `json:"message"`
	Scene    int    `json:"scene"`
	Scanning bool   `json:"scanning"`
}

// HandleCaptureStart opens a scan session on the scene
func (h *PlayerHandler) HandleCaptureStart(w http.ResponseWriter, r *http.Request) {
	scene, ok := sceneParam(w, r)
	if !ok {
		return
	}
	p := playerFrom(r)
	if err := p.Arena.Start(r.Context(), scene); err != nil {
		respondServiceError(w, r, "Start capture", err)
		return
	}
	respondJSON(w, http.StatusOK, CaptureResponse{Message: MsgCaptureStarted, Scene: int(scene), Scanning: p.Arena.Running(scene)})
}

// HandleCaptureStop halts the scene's scan session
func (h *PlayerHandler) HandleCaptureStop(w http.ResponseWriter, r *http.Request) {
	scene, ok := sceneParam(w, r)
	if !ok {
		return
	}
	p := playerFrom(r)
	p.Arena.Stop(scene)
	respondJSON(w, http.StatusOK, CaptureResponse{Message: MsgCaptureStopped, Scene: int(scene)})
}

// DetectionRequest carries text a client-side decoder already read
type DetectionRequest struct {
	Text string `json:"text" validate:"max=4096"`
}

// HandleCaptureDetection feeds one decoded frame to the scene's session.
// An empty text counts as a frame without a code.
func (h *PlayerHandler) HandleCaptureDetection(w http.ResponseWriter, r *http.Request) {
	scene, ok := sceneParam(w, r)
	if !ok {
		return
	}
	var req DetectionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Capture detection"); err != nil {
		return
	}
	if err := playerFrom(r).Arena.Push(scene, capture.Frame{Text: req.Text}); err != nil {
		respondServiceError(w, r, "Capture detection", err)
		return
	}
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgFrameAccepted})
}

// HandleCaptureFrame feeds one raw PNG or JPEG frame to the scene's session
func (h *PlayerHandler) HandleCaptureFrame(w http.ResponseWriter, r *http.Request) {
	scene, ok := sceneParam(w, r)
	if !ok {
		return
	}

	img, _, err := image.Decode(http.MaxBytesReader(w, r.Body, MaxFrameBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgFrameTooLarge)
			return
		}
		logger.FromContext(r.Context()).Debug(LogMsgFrameDecodeError, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgUnreadableFrame)
		return
	}

	if err := playerFrom(r).Arena.Push(scene, capture.Frame{Image: img}); err != nil {
		respondServiceError(w, r, "Capture frame", err)
		return
	}
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgFrameAccepted})
}
