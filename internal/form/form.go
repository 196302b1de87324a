// Package form drives the list+form views of the record pages.
//
// A Form owns the current row snapshot of one table and a tagged Mode.
// Every successful mutation is followed by a full re-fetch; failures leave
// the mode and the submitted payload untouched.
package form

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/restaurant-ledger/internal"
)

var (
	ErrNotOpen = errors.New("form: nothing to submit while idle")
	ErrNotIdle = errors.New("form: delete is only allowed while idle")
)

// Backend is the record service behind one view.
type Backend[R, P any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, payload P) (R, error)
	Update(ctx context.Context, id int64, payload P) (R, error)
	Delete(ctx context.Context, id int64) error
}

type Config[R, P any] struct {
	// Singular and Plural name the records in notifications, e.g. "Income", "incomes".
	Singular string
	Plural   string
	Backend  Backend[R, P]
	ID       func(R) int64
	// Blank returns the create defaults.
	Blank func() P
	// Prefill copies a row into an edit payload.
	Prefill func(R) P
	// Guard runs before any backend call; a non-nil error blocks submission.
	Guard    func(P) error
	Notifier Notifier
}

type Form[R, P any] struct {
	cfg     Config[R, P]
	mode    Mode[R]
	payload P
	rows    []R
}

func New[R, P any](cfg Config[R, P]) *Form[R, P] {
	if cfg.Notifier == nil {
		cfg.Notifier = discard{}
	}
	return &Form[R, P]{cfg: cfg, mode: IdleMode[R]()}
}

func (f *Form[R, P]) Mode() Mode[R] {
	return f.mode
}

// Payload is what the open form currently shows.
func (f *Form[R, P]) Payload() P {
	return f.payload
}

func (f *Form[R, P]) Rows() []R {
	return f.rows
}

// Load fetches the full table. On failure the previous rows are kept.
func (f *Form[R, P]) Load(ctx context.Context) error {
	rows, err := f.cfg.Backend.List(ctx)
	if err != nil {
		f.fail("Error fetching "+f.cfg.Plural, err)
		return err
	}
	f.rows = rows
	return nil
}

// StartCreate opens a blank form, replacing any edit in progress.
func (f *Form[R, P]) StartCreate() {
	f.mode = CreatingMode[R]()
	if f.cfg.Blank != nil {
		f.payload = f.cfg.Blank()
	} else {
		var zero P
		f.payload = zero
	}
}

// StartEdit opens the form on row, replacing any create or edit in progress.
func (f *Form[R, P]) StartEdit(row R) {
	f.mode = EditingMode(row)
	f.payload = f.cfg.Prefill(row)
}

// StartEditByID looks row id up in the current snapshot.
func (f *Form[R, P]) StartEditByID(id int64) bool {
	for _, row := range f.rows {
		if f.cfg.ID(row) == id {
			f.StartEdit(row)
			return true
		}
	}
	return false
}

func (f *Form[R, P]) Cancel() {
	f.mode = IdleMode[R]()
	var zero P
	f.payload = zero
}

// Submit inserts or updates depending on the mode. The guard runs first and
// a rejected payload never reaches the backend.
func (f *Form[R, P]) Submit(ctx context.Context, payload P) error {
	if !f.mode.IsOpen() {
		return ErrNotOpen
	}
	f.payload = payload

	if f.cfg.Guard != nil {
		if err := f.cfg.Guard(payload); err != nil {
			f.cfg.Notifier.Notify(Notification{Level: LevelError, Title: message(err)})
			return err
		}
	}

	verb := "added"
	var err error
	if row, editing := f.mode.Row(); editing {
		verb = "updated"
		_, err = f.cfg.Backend.Update(ctx, f.cfg.ID(row), payload)
	} else {
		_, err = f.cfg.Backend.Create(ctx, payload)
	}
	if err != nil {
		f.fail("Error saving "+strings.ToLower(f.cfg.Singular), err)
		return err
	}

	f.cfg.Notifier.Notify(Notification{Level: LevelSuccess, Title: f.cfg.Singular + " " + verb + " successfully"})
	f.Cancel()
	return f.Load(ctx)
}

// Delete removes a row without confirmation and re-fetches.
func (f *Form[R, P]) Delete(ctx context.Context, id int64) error {
	if f.mode.IsOpen() {
		return ErrNotIdle
	}
	if err := f.cfg.Backend.Delete(ctx, id); err != nil {
		f.fail("Error deleting "+strings.ToLower(f.cfg.Singular), err)
		return err
	}
	f.cfg.Notifier.Notify(Notification{Level: LevelSuccess, Title: f.cfg.Singular + " deleted successfully"})
	return f.Load(ctx)
}

func (f *Form[R, P]) fail(title string, err error) {
	detail := "Please try again"
	if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeValidation {
		detail = appErr.GetDetailedMessage()
	}
	f.cfg.Notifier.Notify(Notification{Level: LevelError, Title: title, Detail: detail})
}

func message(err error) string {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.GetDetailedMessage()
	}
	return err.Error()
}
