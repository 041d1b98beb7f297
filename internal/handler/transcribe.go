package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/event-search/internal/metrics"
	"github.com/iliyamo/event-search/internal/transcribe"
)

// TranscribeHandler converts an uploaded audio clip into text so voice
// queries can be fed to the search endpoint.
type TranscribeHandler struct {
	Transcriber transcribe.Transcriber
	Log         *zap.Logger
}

type transcribeResponse struct {
	Text string `json:"text"`
}

// PostTranscribe handles POST /v1/transcribe. The request carries the clip
// as a multipart "file" part. An empty transcript is a valid success: quiet
// audio is not an upstream failure.
func (h *TranscribeHandler) PostTranscribe(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		metrics.TranscribeRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing audio file in request."})
	}

	src, err := fh.Open()
	if err != nil {
		metrics.TranscribeRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing audio file in request."})
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		metrics.TranscribeRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing audio file in request."})
	}

	mediaType := fh.Header.Get("Content-Type")
	text, err := h.Transcriber.Transcribe(c.Request().Context(), audio, fh.Filename, mediaType)
	if err != nil {
		if errors.Is(err, transcribe.ErrMissingCredentials) {
			metrics.TranscribeRequests.WithLabelValues("not_configured").Inc()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transcription capability is not configured."})
		}
		h.Log.Error("transcription request failed", zap.Error(err))
		metrics.TranscribeRequests.WithLabelValues("error").Inc()
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "transcription failed."})
	}

	metrics.TranscribeRequests.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, transcribeResponse{Text: text})
}
