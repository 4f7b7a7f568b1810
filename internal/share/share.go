// Package share builds outbound links for a withdrawal: a maps location and a
// messaging deep link carrying a summary of the record.
package share

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/locale"
)

const (
	mapsBase         = "https://maps.google.com/?q="
	mobileMessageURL = "https://api.whatsapp.com/send"
	webMessageURL    = "https://web.whatsapp.com/send"
)

var mobileAgent = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// Links are the outbound links of one withdrawal.
type Links struct {
	MapsURL    string
	Message    string
	MessageURL string
}

// MapsURL points a maps application at c.
func MapsURL(c model.Coordinates) string {
	return mapsBase + formatFloat(c.Latitude) + "," + formatFloat(c.Longitude)
}

// Message renders the plain-text summary sent through the messaging app.
func Message(w model.Withdrawal, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("*REGISTRO DE COLETA - GPS SYSTEM*\n\n")
	b.WriteString("📄 *NF:* " + w.NFNumber + "\n")
	b.WriteString("👤 *Responsável:* " + w.RecipientName + "\n")
	b.WriteString("📅 *Data/Hora:* " + locale.DateTime(w.Timestamp, loc) + "\n")
	b.WriteString("👮 *Operador:* " + w.UserName + "\n")
	if w.Location != nil {
		b.WriteString("📍 *Localização:* " + MapsURL(*w.Location) + "\n")
	}
	b.WriteString("\n_O comprovante digital está salvo no sistema._")
	return b.String()
}

// IsMobile reports whether userAgent belongs to a phone or tablet.
func IsMobile(userAgent string) bool {
	return mobileAgent.MatchString(userAgent)
}

// For builds the links of w for a client identified by userAgent.
func For(w model.Withdrawal, userAgent string, loc *time.Location) Links {
	base := webMessageURL
	if IsMobile(userAgent) {
		base = mobileMessageURL
	}

	msg := Message(w, loc)
	links := Links{
		Message:    msg,
		MessageURL: base + "?text=" + encodeComponent(msg),
	}
	if w.Location != nil {
		links.MapsURL = MapsURL(*w.Location)
	}
	return links
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
