package form

// Kind tags the state of a list+form view.
type Kind int

const (
	Idle Kind = iota
	Creating
	Editing
)

func (k Kind) String() string {
	switch k {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Mode is Idle, Creating, or Editing(row). Only Editing carries a row, so the
// view can never be creating and editing at once.
type Mode[R any] struct {
	kind Kind
	row  R
}

func IdleMode[R any]() Mode[R] {
	return Mode[R]{kind: Idle}
}

func CreatingMode[R any]() Mode[R] {
	return Mode[R]{kind: Creating}
}

func EditingMode[R any](row R) Mode[R] {
	return Mode[R]{kind: Editing, row: row}
}

func (m Mode[R]) Kind() Kind {
	return m.kind
}

// Row is the row under edit; ok is false outside Editing.
func (m Mode[R]) Row() (row R, ok bool) {
	if m.kind != Editing {
		var zero R
		return zero, false
	}
	return m.row, true
}

func (m Mode[R]) IsOpen() bool {
	return m.kind != Idle
}
