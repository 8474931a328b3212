package authsession

// Layout names of the two application shells.
const (
	LayoutMain  = "main"
	LayoutLogin = "login"
)

// LayoutSwitcher flips the application between the authenticated and
// unauthenticated shells.
type LayoutSwitcher interface {
	SetLayout(name string)
}

// LayoutFunc adapts a plain function to LayoutSwitcher.
type LayoutFunc func(name string)

func (f LayoutFunc) SetLayout(name string) { f(name) }
