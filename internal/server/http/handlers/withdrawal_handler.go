package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/capture"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/dto"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

const (
	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
	formMemory     = 8 << 20
)

// WithdrawalHandler manages withdrawal endpoints.
type WithdrawalHandler struct {
	facade   WithdrawalFacade
	maxBytes int64
}

// NewWithdrawalHandler constructs WithdrawalHandler. Capture requests larger
// than maxBytes are rejected; a non-positive value disables the limit.
func NewWithdrawalHandler(facade WithdrawalFacade, maxBytes int64) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade, maxBytes: maxBytes}
}

// Create handles POST /api/withdrawals.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}
	if err := c.Request.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}

	in := usecase.CaptureInput{
		RecipientName: c.PostForm(capture.FieldRecipient),
		NFNumber:      c.PostForm(capture.FieldInvoice),
		Latitude:      formFloat(c, fieldLatitude),
		Longitude:     formFloat(c, fieldLongitude),
	}

	var file multipart.File
	if header, err := c.FormFile(capture.FieldPhoto); err == nil {
		file, err = header.Open()
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		defer file.Close()
		in.Photo = file
		in.PhotoName = header.Filename
	}

	captured, err := h.facade.RecordWithdrawal(c.Request.Context(), CurrentIdentity(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CaptureResponse{
		Withdrawal:    toWithdrawalResponse(captured.Withdrawal),
		LocationState: string(captured.Location),
	})
}

// List handles GET /api/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	records, err := h.facade.Withdrawals(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(records) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.WithdrawalResponse, 0, len(records))
	for _, w := range records {
		response = append(response, toWithdrawalResponse(w))
	}
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/withdrawals/:id.
func (h *WithdrawalHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteWithdrawal(c.Request.Context(), CurrentIdentity(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Share handles GET /api/withdrawals/:id/share.
func (h *WithdrawalHandler) Share(c *gin.Context) {
	_, links, err := h.facade.ShareWithdrawal(c.Request.Context(), c.Param("id"), c.Request.UserAgent())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ShareResponse{
		MapsURL:    links.MapsURL,
		Message:    links.Message,
		MessageURL: links.MessageURL,
	})
}

func toWithdrawalResponse(w model.Withdrawal) dto.WithdrawalResponse {
	lat, lng := w.LatLng()
	return dto.WithdrawalResponse{
		ID:            w.ID,
		UserID:        w.UserID,
		UserName:      w.UserName,
		RecipientName: w.RecipientName,
		NFNumber:      w.NFNumber,
		ImageURL:      w.ImageURL,
		Timestamp:     w.Timestamp,
		Latitude:      lat,
		Longitude:     lng,
	}
}

// formFloat reads an optional coordinate. Blank or malformed values count as
// absent.
func formFloat(c *gin.Context, key string) *float64 {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
