// Package capture assembles a withdrawal from independently arriving inputs
// and submits it exactly once.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/objectkey"
)

// Field names reported by validation.
const (
	FieldRecipient = "recipient_name"
	FieldInvoice   = "nf_number"
	FieldPhoto     = "photo"
)

// DefaultLocationTimeout bounds a geolocation request.
const DefaultLocationTimeout = 5 * time.Second

// ErrAlreadySubmitted is returned by Submit once the draft has been saved.
var ErrAlreadySubmitted = errors.New("draft already submitted")

// LocationState tracks the geolocation request of a draft.
type LocationState string

const (
	LocationIdle    LocationState = "idle"
	LocationPending LocationState = "pending"
	LocationSuccess LocationState = "success"
	LocationError   LocationState = "error"
)

// Draft is the single in-progress withdrawal of a capture session.
type Draft struct {
	mu sync.Mutex

	recipient string
	invoice   string
	photo     []byte
	photoName string
	imageURL  string

	locState LocationState
	location *model.Coordinates
	locErr   error
	locDone  chan struct{}

	submitting bool
	submitted  bool

	timeout time.Duration
	now     func() time.Time
}

// NewDraft creates an empty draft whose geolocation requests give up after
// timeout. A non-positive timeout selects DefaultLocationTimeout.
func NewDraft(timeout time.Duration) *Draft {
	if timeout <= 0 {
		timeout = DefaultLocationTimeout
	}
	return &Draft{
		locState: LocationIdle,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (d *Draft) SetRecipient(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recipient = strings.TrimSpace(name)
}

func (d *Draft) SetInvoice(number string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invoice = strings.TrimSpace(number)
}

// AttachPhoto reads r to the end before the photo counts as present, so a
// partially read image can never be submitted. Content that is not an image
// is rejected.
func (d *Draft) AttachPhoto(r io.Reader, name string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 || !objectkey.IsImage(data) {
		return &domainErrors.ValidationError{Fields: []string{FieldPhoto}}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.photo = data
	d.photoName = name
	d.imageURL = ""
	return nil
}

// Locate starts a best-effort geolocation request in the background. The
// request ends in LocationError if it fails or outlives the draft timeout.
func (d *Draft) Locate(ctx context.Context, locator Locator) {
	d.mu.Lock()
	if d.locState == LocationPending {
		d.mu.Unlock()
		return
	}
	done := make(chan struct{})
	d.locState = LocationPending
	d.location = nil
	d.locErr = nil
	d.locDone = done
	d.mu.Unlock()

	go func() {
		defer close(done)

		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		type fix struct {
			coords model.Coordinates
			err    error
		}
		result := make(chan fix, 1)
		go func() {
			c, err := locator.Locate(ctx)
			result <- fix{coords: c, err: err}
		}()

		var f fix
		select {
		case f = <-result:
		case <-ctx.Done():
			f.err = ctx.Err()
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		if f.err != nil {
			d.locState = LocationError
			d.locErr = fmt.Errorf("%w: %v", domainErrors.ErrGeolocationUnavailable, f.err)
			return
		}
		coords := f.coords
		d.locState = LocationSuccess
		d.location = &coords
	}()
}

// AwaitLocation blocks until the pending geolocation request resolves or ctx
// ends. It never waits longer than the draft timeout.
func (d *Draft) AwaitLocation(ctx context.Context) LocationState {
	d.mu.Lock()
	done := d.locDone
	d.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	state, _, _ := d.Location()
	return state
}

// Location reports the geolocation state, the fix when successful, and the
// failure when in LocationError.
func (d *Draft) Location() (LocationState, *model.Coordinates, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.location == nil {
		return d.locState, nil, d.locErr
	}
	c := *d.location
	return d.locState, &c, d.locErr
}

// Submitting reports whether a submission is in flight.
func (d *Draft) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}

// Validate reports the required fields that are still missing.
func (d *Draft) Validate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.validateLocked()
}

func (d *Draft) validateLocked() error {
	var missing []string
	if d.recipient == "" {
		missing = append(missing, FieldRecipient)
	}
	if d.invoice == "" {
		missing = append(missing, FieldInvoice)
	}
	if len(d.photo) == 0 {
		missing = append(missing, FieldPhoto)
	}
	if len(missing) > 0 {
		return &domainErrors.ValidationError{Fields: missing}
	}
	return nil
}

// Submit uploads the photo, builds the record and saves it. Validation
// failures make no backend call. A failed submission keeps every entered
// value, including an already uploaded photo URL, so it can be retried. A
// second call while one is in flight returns ErrSubmissionInProgress.
func (d *Draft) Submit(ctx context.Context, author model.Identity, receipts repository.ReceiptStore, withdrawals repository.WithdrawalRepository) (model.Withdrawal, error) {
	d.mu.Lock()
	switch {
	case d.submitting:
		d.mu.Unlock()
		return model.Withdrawal{}, domainErrors.ErrSubmissionInProgress
	case d.submitted:
		d.mu.Unlock()
		return model.Withdrawal{}, ErrAlreadySubmitted
	}
	if err := d.validateLocked(); err != nil {
		d.mu.Unlock()
		return model.Withdrawal{}, err
	}
	d.submitting = true
	recipient, invoice := d.recipient, d.invoice
	photo, photoName, imageURL := d.photo, d.photoName, d.imageURL
	var location *model.Coordinates
	if d.locState == LocationSuccess && d.location != nil {
		c := *d.location
		location = &c
	}
	d.mu.Unlock()

	succeeded := false
	defer func() {
		d.mu.Lock()
		d.submitting = false
		d.submitted = succeeded
		d.mu.Unlock()
	}()

	if imageURL == "" {
		url, err := receipts.Upload(ctx, bytes.Clone(photo), photoName)
		if err != nil {
			return model.Withdrawal{}, err
		}
		imageURL = url
		d.mu.Lock()
		d.imageURL = url
		d.mu.Unlock()
	}

	record := model.Withdrawal{
		ID:            uuid.NewString(),
		UserID:        author.UserID,
		UserName:      author.Name,
		RecipientName: recipient,
		NFNumber:      invoice,
		ImageURL:      imageURL,
		Timestamp:     d.now().UTC().Truncate(time.Microsecond),
		Location:      location,
	}

	if err := withdrawals.Save(ctx, record); err != nil {
		return model.Withdrawal{}, err
	}

	succeeded = true
	return record, nil
}
