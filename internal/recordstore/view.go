package recordstore

// Mode is the screen a store's view is in.
type Mode int

const (
	Listing Mode = iota
	Viewing
	Editing
)

func (m Mode) String() string {
	switch m {
	case Listing:
		return "listing"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	}
	return "unknown"
}

// View is the store's view state: Listing, Viewing(record), or
// Editing(record) / Editing(none) for a new record. Record is only
// meaningful when HasRecord is set, and Viewing always has one.
type View[R any] struct {
	Mode      Mode
	Record    R
	HasRecord bool
}

func listing[R any]() View[R] { return View[R]{Mode: Listing} }

func viewing[R any](r R) View[R] { return View[R]{Mode: Viewing, Record: r, HasRecord: true} }

func adding[R any]() View[R] { return View[R]{Mode: Editing} }

func editing[R any](r R) View[R] { return View[R]{Mode: Editing, Record: r, HasRecord: true} }
