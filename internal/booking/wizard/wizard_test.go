package wizard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venuelink/internal/auth"
	"venuelink/internal/booking/wizard"
	"venuelink/internal/client"
	"venuelink/internal/lib/logger/handlers/slogdiscard"
	"venuelink/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creatorFunc func(ctx context.Context, params client.CreateBookingParams) (models.BookingConfirmation, error)

func (f creatorFunc) CreateBooking(ctx context.Context, params client.CreateBookingParams) (models.BookingConfirmation, error) {
	return f(ctx, params)
}

func testVenue() models.Venue {
	return models.Venue{
		ID:             "v-1",
		Name:           "The Rooftop",
		Type:           models.VenueTypeBar,
		Capacity:       100,
		BasePriceCents: 45000,
	}
}

func fillValidEventDetails(w *wizard.Wizard) {
	w.Update(func(v *wizard.Values) {
		v.EventName = "Spring Formal"
		v.EventDate = models.NewDate(2026, time.April, 18)
		v.EventTime = "19:30"
		guests := 50
		v.GuestCount = &guests
	})
}

func advanceToReview(t *testing.T, w *wizard.Wizard) {
	t.Helper()

	fillValidEventDetails(w)

	_, ok := w.Next()
	require.True(t, ok)
	_, ok = w.Next()
	require.True(t, ok)
	require.Equal(t, wizard.StepReview, w.Step())
}

func TestNewWizardStartsAtFirstStep(t *testing.T) {
	t.Parallel()

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)

	assert.Equal(t, wizard.StepEventDetails, w.Step())
	assert.Equal(t, wizard.PhaseEditing, w.Phase())
}

func TestNextValidatesOnlyCurrentStep(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(v *wizard.Values)
		field   string
		wantMsg string
	}{
		{
			name:    "empty name",
			mutate:  func(v *wizard.Values) { v.EventName = "" },
			field:   "eventName",
			wantMsg: "Must be at least 3 characters",
		},
		{
			name:    "short name",
			mutate:  func(v *wizard.Values) { v.EventName = "ab" },
			field:   "eventName",
			wantMsg: "Must be at least 3 characters",
		},
		{
			name:    "long name",
			mutate:  func(v *wizard.Values) { v.EventName = strings.Repeat("x", 101) },
			field:   "eventName",
			wantMsg: "Must be at most 100 characters",
		},
		{
			name:    "missing date",
			mutate:  func(v *wizard.Values) { v.EventDate = models.Date{} },
			field:   "eventDate",
			wantMsg: "Event date is required",
		},
		{
			name:    "missing time",
			mutate:  func(v *wizard.Values) { v.EventTime = "" },
			field:   "eventTime",
			wantMsg: "Event time is required",
		},
		{
			name:    "missing guest count",
			mutate:  func(v *wizard.Values) { v.GuestCount = nil },
			field:   "guestCount",
			wantMsg: "Guest count is required",
		},
		{
			name: "below minimum group size",
			mutate: func(v *wizard.Values) {
				guests := 9
				v.GuestCount = &guests
			},
			field:   "guestCount",
			wantMsg: "Minimum 10 guests",
		},
		{
			name: "above venue capacity",
			mutate: func(v *wizard.Values) {
				guests := 101
				v.GuestCount = &guests
			},
			field:   "guestCount",
			wantMsg: "Maximum 100 guests for this venue",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)
			fillValidEventDetails(w)
			w.Update(tc.mutate)

			errs, ok := w.Next()

			assert.False(t, ok)
			assert.Equal(t, wizard.StepEventDetails, w.Step(), "failed validation must not advance")
			require.Contains(t, errs, tc.field)
			assert.Equal(t, tc.wantMsg, errs[tc.field])
		})
	}
}

func TestNextReportsAllFailingFieldsAtOnce(t *testing.T) {
	t.Parallel()

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)

	errs, ok := w.Next()

	assert.False(t, ok)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "eventName")
	assert.Contains(t, errs, "eventDate")
	assert.Contains(t, errs, "eventTime")
	assert.Contains(t, errs, "guestCount")
}

func TestSecondStepValidatesSpecialRequestsOnly(t *testing.T) {
	t.Parallel()

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)
	fillValidEventDetails(w)

	_, ok := w.Next()
	require.True(t, ok)

	w.Update(func(v *wizard.Values) {
		v.SpecialRequests = strings.Repeat("x", 501)
	})

	errs, ok := w.Next()
	assert.False(t, ok)
	require.Contains(t, errs, "specialRequests")
	assert.Equal(t, "Must be at most 500 characters", errs["specialRequests"])
	assert.Equal(t, wizard.StepAdditionalInfo, w.Step())

	w.Update(func(v *wizard.Values) {
		v.SpecialRequests = "stage for a band"
	})

	_, ok = w.Next()
	assert.True(t, ok)
	assert.Equal(t, wizard.StepReview, w.Step())
}

func TestBackNeverRevalidatesAndKeepsValues(t *testing.T) {
	t.Parallel()

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)
	fillValidEventDetails(w)

	_, ok := w.Next()
	require.True(t, ok)

	// Corrupt a step-one field, then go back. Back must succeed without
	// validating anything.
	w.Update(func(v *wizard.Values) { v.EventName = "" })
	w.Back()

	assert.Equal(t, wizard.StepEventDetails, w.Step())
	assert.Equal(t, "", w.Values().EventName)
	assert.Equal(t, "19:30", w.Values().EventTime, "other values survive navigation")

	// Back at the first step is a no-op.
	w.Back()
	assert.Equal(t, wizard.StepEventDetails, w.Step())
}

func TestEstimatedCostTracksGuestCount(t *testing.T) {
	t.Parallel()

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)

	assert.Equal(t, 45000, w.EstimatedCostCents(), "no guest count yet")

	w.Update(func(v *wizard.Values) {
		guests := 50
		v.GuestCount = &guests
	})

	assert.Equal(t, 70000, w.EstimatedCostCents())
}

func TestSubmitOnlyFromReviewStep(t *testing.T) {
	t.Parallel()

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), nil)
	fillValidEventDetails(w)

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, wizard.PhaseEditing, w.Phase())
}

func TestSubmitRunsFullValidation(t *testing.T) {
	t.Parallel()

	called := false
	creator := creatorFunc(func(ctx context.Context, params client.CreateBookingParams) (models.BookingConfirmation, error) {
		called = true
		return models.BookingConfirmation{}, nil
	})

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), creator)
	advanceToReview(t, w)

	// A field corrupted after its step passed must still block the
	// submission.
	w.Update(func(v *wizard.Values) { v.EventTime = "" })

	_, err := w.Submit(context.Background())
	require.Error(t, err)

	var fieldErrs wizard.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Event time is required", fieldErrs["eventTime"])
	assert.False(t, called, "invalid values must not reach the network")
}

func TestSubmitFailureReturnsToReviewWithValuesIntact(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("venue is fully booked")
	creator := creatorFunc(func(ctx context.Context, params client.CreateBookingParams) (models.BookingConfirmation, error) {
		return models.BookingConfirmation{}, wantErr
	})

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), creator)
	advanceToReview(t, w)

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, wantErr)

	assert.Equal(t, wizard.PhaseEditing, w.Phase())
	assert.Equal(t, wizard.StepReview, w.Step())
	assert.Equal(t, "Spring Formal", w.Values().EventName, "entered values survive a failed submission")
	assert.ErrorIs(t, w.SubmitError(), wantErr)

	w.DismissError()
	assert.NoError(t, w.SubmitError())

	_, ok := w.Confirmation()
	assert.False(t, ok)
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	var got client.CreateBookingParams
	creator := creatorFunc(func(ctx context.Context, params client.CreateBookingParams) (models.BookingConfirmation, error) {
		got = params
		return models.BookingConfirmation{
			ID:              "b-77",
			ReferenceNumber: "VL-A2B3C4D5",
			VenueName:       "The Rooftop",
			Status:          models.BookingPending,
		}, nil
	})

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), creator)
	advanceToReview(t, w)

	confirmation, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, wizard.PhaseSuccess, w.Phase())
	assert.Equal(t, "VL-A2B3C4D5", confirmation.ReferenceNumber)

	stored, ok := w.Confirmation()
	require.True(t, ok)
	assert.Equal(t, confirmation, stored)

	assert.Equal(t, "v-1", got.VenueID)
	assert.Equal(t, "Spring Formal", got.EventName)
	assert.Equal(t, 50, got.GuestCount)
}

func TestSubmitAgainstHTTPBackend(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	router.Post("/bookings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, render.DecodeJSON(r.Body, &body))
		assert.Equal(t, "v-1", body["venue_id"])

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":                   "b-77",
			"reference_number":     "VL-A2B3C4D5",
			"venue_name":           "The Rooftop",
			"event_name":           body["event_name"],
			"event_date":           body["event_date"],
			"event_time":           body["event_time"],
			"guest_count":          body["guest_count"],
			"estimated_cost_cents": 70000,
			"status":               "pending",
		})
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	api, err := client.New(slogdiscard.NewDiscardLogger(), client.Options{
		BaseURL: srv.URL,
		Tokens:  auth.Static("test-token"),
	})
	require.NoError(t, err)

	w := wizard.New(slogdiscard.NewDiscardLogger(), testVenue(), api)
	advanceToReview(t, w)

	confirmation, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, wizard.PhaseSuccess, w.Phase())
	assert.NotEmpty(t, confirmation.ReferenceNumber)
	assert.Equal(t, models.BookingPending, confirmation.Status)
	assert.Equal(t, 70000, confirmation.EstimatedCostCents)
	assert.Equal(t, "2026-04-18", confirmation.EventDate.String())
}
