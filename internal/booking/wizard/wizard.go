package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"venuelink/internal/client"
	"venuelink/internal/lib/logger/sl"
	"venuelink/internal/models"

	"github.com/go-playground/validator/v10"
)

// Step is the wizard's current form step.
type Step int

const (
	StepEventDetails Step = iota
	StepAdditionalInfo
	StepReview

	totalSteps = 3
)

// Phase is the wizard's submission lifecycle. A failed submission
// returns to PhaseEditing at StepReview with the entered values intact.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
)

const (
	MinEventNameLength       = 3
	MaxEventNameLength       = 100
	MaxSpecialRequestsLength = 500
	MinGroupSize             = 10
)

const (
	msgEventNameMin      = "Must be at least 3 characters"
	msgEventNameMax      = "Must be at most 100 characters"
	msgDateRequired      = "Event date is required"
	msgTimeRequired      = "Event time is required"
	msgGuestsRequired    = "Guest count is required"
	msgGuestsMin         = "Minimum 10 guests"
	msgSpecialRequestMax = "Must be at most 500 characters"
)

// Values holds the form fields across all steps. GuestCount and
// BudgetCents are pointers so "not entered" is distinct from zero.
type Values struct {
	EventName       string
	EventDate       models.Date
	EventTime       string
	GuestCount      *int
	SpecialRequests string
	BudgetCents     *int
}

// stepFields declares which fields each step validates on Next.
// Later-step fields stay untouched until their step is current.
var stepFields = map[Step][]string{
	StepEventDetails:   {"eventName", "eventDate", "eventTime", "guestCount"},
	StepAdditionalInfo: {"specialRequests"},
	StepReview:         nil,
}

// FieldErrors maps field names to user-facing validation messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(fe))
}

// BookingCreator submits the assembled booking request.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, params client.CreateBookingParams) (models.BookingConfirmation, error)
}

// Wizard is the multi-step booking form state machine for one venue.
// The venue's capacity is the dynamic upper bound on guest count.
type Wizard struct {
	log      *slog.Logger
	venue    models.Venue
	creator  BookingCreator
	validate *validator.Validate

	step   Step
	phase  Phase
	values Values

	confirmation models.BookingConfirmation
	submitErr    error
}

func New(log *slog.Logger, venue models.Venue, creator BookingCreator) *Wizard {
	return &Wizard{
		log:      log,
		venue:    venue,
		creator:  creator,
		validate: validator.New(),
		step:     StepEventDetails,
		phase:    PhaseEditing,
	}
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Phase() Phase {
	return w.phase
}

func (w *Wizard) Values() Values {
	return w.values
}

func (w *Wizard) Venue() models.Venue {
	return w.venue
}

// Update edits form fields in place. Values survive navigation and
// failed submissions.
func (w *Wizard) Update(fn func(*Values)) {
	fn(&w.values)
}

// EstimatedCostCents is the reactively derived price for the current
// guest count.
func (w *Wizard) EstimatedCostCents() int {
	return EstimatedCost(w.venue.BasePriceCents, w.values.GuestCount)
}

// Next validates only the current step's fields and advances when they
// pass. On failure the step does not change and per-field errors are
// returned.
func (w *Wizard) Next() (FieldErrors, bool) {
	if w.phase != PhaseEditing || w.step >= StepReview {
		return nil, false
	}

	if errs := w.validateFields(stepFields[w.step]); len(errs) > 0 {
		return errs, false
	}

	w.step++

	return nil, true
}

// Back moves to the previous step unconditionally and never
// re-validates.
func (w *Wizard) Back() {
	if w.phase != PhaseEditing || w.step == StepEventDetails {
		return
	}

	w.step--
}

// Submit is reachable only from the review step. It runs full-schema
// validation over the assembled values and calls the creation endpoint
// only when everything passes. A server failure returns the wizard to
// the review step with values intact and a dismissable error set.
func (w *Wizard) Submit(ctx context.Context) (models.BookingConfirmation, error) {
	const op = "wizard.Submit"

	log := w.log.With(slog.String("op", op), slog.String("venue_id", w.venue.ID))

	if w.phase != PhaseEditing || w.step != StepReview {
		return models.BookingConfirmation{}, errors.New("submit is only available from the review step")
	}

	var all []string
	for step := StepEventDetails; step < totalSteps; step++ {
		all = append(all, stepFields[step]...)
	}

	if errs := w.validateFields(all); len(errs) > 0 {
		return models.BookingConfirmation{}, errs
	}

	w.phase = PhaseSubmitting
	w.submitErr = nil

	confirmation, err := w.creator.CreateBooking(ctx, client.CreateBookingParams{
		VenueID:         w.venue.ID,
		EventName:       w.values.EventName,
		EventDate:       w.values.EventDate,
		EventTime:       w.values.EventTime,
		GuestCount:      *w.values.GuestCount,
		SpecialRequests: w.values.SpecialRequests,
		BudgetCents:     w.values.BudgetCents,
	})
	if err != nil {
		log.Error("booking submission failed", sl.Err(err))

		w.phase = PhaseEditing
		w.step = StepReview
		w.submitErr = err

		return models.BookingConfirmation{}, err
	}

	log.Info("booking submitted",
		slog.String("reference", confirmation.ReferenceNumber),
	)

	w.phase = PhaseSuccess
	w.confirmation = confirmation

	return confirmation, nil
}

// Confirmation returns the creation response after a successful submit.
func (w *Wizard) Confirmation() (models.BookingConfirmation, bool) {
	return w.confirmation, w.phase == PhaseSuccess
}

// SubmitError returns the dismissable server error from the last failed
// submission, if any.
func (w *Wizard) SubmitError() error {
	return w.submitErr
}

func (w *Wizard) DismissError() {
	w.submitErr = nil
}

func (w *Wizard) validateFields(fields []string) FieldErrors {
	errs := FieldErrors{}

	for _, field := range fields {
		switch field {
		case "eventName":
			tag := fmt.Sprintf("min=%d,max=%d", MinEventNameLength, MaxEventNameLength)
			if err := w.validate.Var(w.values.EventName, tag); err != nil {
				errs[field] = msgEventNameMin

				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
					errs[field] = msgEventNameMax
				}
			}
		case "eventDate":
			if w.values.EventDate.IsZero() {
				errs[field] = msgDateRequired
			}
		case "eventTime":
			if err := w.validate.Var(w.values.EventTime, "required"); err != nil {
				errs[field] = msgTimeRequired
			}
		case "guestCount":
			switch {
			case w.values.GuestCount == nil:
				errs[field] = msgGuestsRequired
			case *w.values.GuestCount < MinGroupSize:
				errs[field] = msgGuestsMin
			case *w.values.GuestCount > w.venue.Capacity:
				errs[field] = fmt.Sprintf("Maximum %d guests for this venue", w.venue.Capacity)
			}
		case "specialRequests":
			if err := w.validate.Var(w.values.SpecialRequests, fmt.Sprintf("max=%d", MaxSpecialRequestsLength)); err != nil {
				errs[field] = msgSpecialRequestMax
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}
