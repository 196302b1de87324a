package web

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/form"
	"github.com/go-chi/chi"
)

// formView flattens a form for the templates, which cannot unpack Mode.Row.
type formView[R, P any] struct {
	Open    bool
	Editing bool
	EditID  int64
	Payload P
	Rows    []R
}

func viewOf[R, P any](f *form.Form[R, P], id func(R) int64) formView[R, P] {
	v := formView[R, P]{
		Open:    f.Mode().IsOpen(),
		Payload: f.Payload(),
		Rows:    f.Rows(),
	}
	if row, ok := f.Mode().Row(); ok {
		v.Editing = true
		v.EditID = id(row)
	}
	return v
}

// open loads the table and applies ?new=1 or ?edit={id}.
func open[R, P any](r *http.Request, f *form.Form[R, P]) {
	if err := f.Load(r.Context()); err != nil {
		return
	}
	q := r.URL.Query()
	if raw := q.Get("edit"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.StartEditByID(id)
		}
		return
	}
	if q.Get("new") != "" {
		f.StartCreate()
	}
}

// submit reopens the form in the mode the posted "id" field names, then
// submits the parsed payload. It returns the status the page renders with.
func submit[R, P any](r *http.Request, f *form.Form[R, P], notes form.Notifier, singular string, parse func(url.Values) (P, error)) int {
	if err := r.ParseForm(); err != nil {
		notes.Notify(form.Notification{Level: form.LevelError, Title: "Error saving " + singular, Detail: "Invalid form submission"})
		return http.StatusBadRequest
	}
	if err := f.Load(r.Context()); err != nil {
		return http.StatusBadGateway
	}

	if raw := strings.TrimSpace(r.PostForm.Get("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || !f.StartEditByID(id) {
			notes.Notify(form.Notification{Level: form.LevelError, Title: "Error saving " + singular, Detail: "Record no longer exists"})
			return http.StatusNotFound
		}
	} else {
		f.StartCreate()
	}

	payload, err := parse(r.PostForm)
	if err != nil {
		notes.Notify(form.Notification{Level: form.LevelError, Title: "Error saving " + singular, Detail: detail(err)})
		return http.StatusUnprocessableEntity
	}
	if err := f.Submit(r.Context(), payload); err != nil {
		return statusOf(err)
	}
	return http.StatusOK
}

func remove[R, P any](r *http.Request, f *form.Form[R, P]) int {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return http.StatusBadRequest
	}
	if err := f.Delete(r.Context(), id); err != nil {
		// the table is still shown when the delete itself failed
		_ = f.Load(r.Context())
		return statusOf(err)
	}
	return http.StatusOK
}

func statusOf(err error) int {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusUnprocessableEntity
}

func detail(err error) string {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.GetDetailedMessage()
	}
	return err.Error()
}

// ----------------- FIELD PARSING -----------------

func formFloat(values url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, internal.NewValidationFieldError(key, "must be a number", internal.ErrCodeInvalidAmount)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, internal.NewValidationFieldError(key, "must be a finite number", internal.ErrCodeInvalidAmount)
	}
	return f, nil
}

func formInt(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, internal.NewValidationFieldError(key, "must be a whole number", internal.ErrCodeInvalidQuantity)
	}
	return n, nil
}

func formID(values url.Values, key string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(values.Get(key)), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
