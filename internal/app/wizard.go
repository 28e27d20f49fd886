package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"staysync/internal/adapters/observability"
	"staysync/internal/domain"
)

type WizardStep int

const (
	StepSelectRoom WizardStep = iota
	StepEnterDetails
	StepPayment
	StepConfirmed
)

func (s WizardStep) String() string {
	switch s {
	case StepSelectRoom:
		return "select_room"
	case StepEnterDetails:
		return "enter_details"
	case StepPayment:
		return "payment"
	default:
		return "confirmed"
	}
}

type DetailsDraft struct {
	CheckIn         string
	CheckOut        string
	Guests          int
	SpecialRequests string
}

type PaymentDraft struct {
	Email  string
	Method string // card|paypal
}

// Wizard drives one booking flow for one accommodation:
// SelectRoom -> EnterDetails -> Payment -> Confirmed. Steps only advance on a
// successful Continue; a failed step stays put so the user can retry. Back
// re-enters the prior step without discarding forward drafts. One network
// call may be outstanding at a time; a second Continue while one is pending
// is rejected with ErrInFlight.
type Wizard struct {
	api         domain.BookingsAPI
	log         zerolog.Logger
	callbackURL string

	mu              sync.Mutex
	accommodationID string
	step            WizardStep
	roomID          string
	details         DetailsDraft
	payment         PaymentDraft
	bookingID       string
	inFlight        bool
}

func NewWizard(api domain.BookingsAPI, accommodationID, callbackURL string, log zerolog.Logger) *Wizard {
	return &Wizard{
		api:             api,
		log:             log,
		callbackURL:     callbackURL,
		accommodationID: accommodationID,
		step:            StepSelectRoom,
		details:         DetailsDraft{Guests: 1},
		payment:         PaymentDraft{Method: "card"},
	}
}

func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) SelectRoom(roomID string) {
	w.mu.Lock()
	w.roomID = roomID
	w.mu.Unlock()
}

func (w *Wizard) SetDetails(d DetailsDraft) {
	w.mu.Lock()
	w.details = d
	w.mu.Unlock()
}

func (w *Wizard) SetPayment(p PaymentDraft) {
	w.mu.Lock()
	w.payment = p
	w.mu.Unlock()
}

func (w *Wizard) RoomID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.roomID
}

func (w *Wizard) Details() DetailsDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.details
}

func (w *Wizard) Payment() PaymentDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

// BookingID is set once the EnterDetails step succeeds and is what the
// confirmation view displays.
func (w *Wizard) BookingID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bookingID
}

// Continue runs the current step's forward transition.
func (w *Wizard) Continue(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return ErrInFlight
	}

	switch w.step {
	case StepSelectRoom:
		if w.roomID == "" {
			w.mu.Unlock()
			return &domain.ValidationError{Field: "room", Reason: "no room selected"}
		}
		w.step = StepEnterDetails
		w.mu.Unlock()
		observability.ObserveWizard(StepEnterDetails.String())
		return nil

	case StepEnterDetails:
		d := w.details
		if d.CheckIn == "" {
			w.mu.Unlock()
			return &domain.ValidationError{Field: "check_in_date", Reason: "required"}
		}
		if d.CheckOut == "" {
			w.mu.Unlock()
			return &domain.ValidationError{Field: "check_out_date", Reason: "required"}
		}
		guests := d.Guests
		if guests <= 0 {
			guests = 1
		}
		req := domain.BookingRequest{
			AccommodationID: w.accommodationID,
			RoomID:          w.roomID,
			CheckInDate:     d.CheckIn,
			CheckOutDate:    d.CheckOut,
			Guests:          guests,
			SpecialRequests: d.SpecialRequests,
		}
		w.inFlight = true
		w.mu.Unlock()

		bk, err := w.api.CreateBooking(ctx, req)

		w.mu.Lock()
		w.inFlight = false
		if err != nil {
			w.mu.Unlock()
			w.log.Warn().Err(err).Msg("booking creation failed")
			return err
		}
		w.bookingID = bk.ID
		w.step = StepPayment
		w.mu.Unlock()
		observability.ObserveWizard(StepPayment.String())
		return nil

	case StepPayment:
		p := w.payment
		if p.Email == "" {
			w.mu.Unlock()
			return &domain.ValidationError{Field: "email", Reason: "required"}
		}
		method := p.Method
		if method == "" {
			method = "card"
		}
		req := domain.PaymentRequest{
			BookingID:     w.bookingID,
			PaymentMethod: method,
			Email:         p.Email,
			CallbackURL:   w.callbackURL,
		}
		w.inFlight = true
		w.mu.Unlock()

		_, err := w.api.InitiatePayment(ctx, req)

		w.mu.Lock()
		w.inFlight = false
		if err != nil {
			w.mu.Unlock()
			w.log.Warn().Err(err).Msg("payment initiation failed")
			return err
		}
		w.step = StepConfirmed
		w.mu.Unlock()
		observability.ObserveWizard(StepConfirmed.String())
		return nil

	default: // StepConfirmed
		w.mu.Unlock()
		return nil
	}
}

// Back re-enters the prior step. Drafts for later steps are kept, so
// re-advancing reuses them unless edited. Ignored while a call is in flight
// and at the flow's endpoints.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return
	}
	switch w.step {
	case StepEnterDetails:
		w.step = StepSelectRoom
	case StepPayment:
		w.step = StepEnterDetails
	}
}

// Reset is the "return" action from the confirmation view: back to
// SelectRoom with every draft discarded.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return
	}
	w.step = StepSelectRoom
	w.roomID = ""
	w.details = DetailsDraft{Guests: 1}
	w.payment = PaymentDraft{Method: "card"}
	w.bookingID = ""
}
