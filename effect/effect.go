// Package effect models the host side effects a failed request triggers:
// a toast, clearing stored credentials, and switching to the login tab.
//
// Effects are plain values. The request client returns them in order and a
// Runner executes them against host interfaces.
package effect

import (
	"context"
	"fmt"
)

// Kind names an effect type.
type Kind string

const (
	KindToast            Kind = "toast"
	KindClearCredentials Kind = "clear_credentials"
	KindRedirect         Kind = "redirect"
)

// Effect is one host side effect.
type Effect interface {
	Kind() Kind
	String() string
}

// IconNone is the only icon the client uses for toasts.
const IconNone = "none"

// Toast shows a transient message to the user.
type Toast struct {
	Title string
	Icon  string
}

func (Toast) Kind() Kind { return KindToast }

func (t Toast) String() string { return fmt.Sprintf("toast(%q)", t.Title) }

// ClearCredentials removes the stored token and user profile.
type ClearCredentials struct{}

func (ClearCredentials) Kind() Kind { return KindClearCredentials }

func (ClearCredentials) String() string { return "clear_credentials" }

// Redirect switches the host to a navigation tab.
type Redirect struct {
	Path string
}

func (Redirect) Kind() Kind { return KindRedirect }

func (r Redirect) String() string { return fmt.Sprintf("redirect(%s)", r.Path) }

// Notifier shows toasts.
type Notifier interface {
	ShowToast(ctx context.Context, t Toast) error
}

// Navigator switches tabs.
type Navigator interface {
	SwitchTab(ctx context.Context, path string) error
}

// CredentialClearer removes stored credentials.
type CredentialClearer interface {
	Clear(ctx context.Context) error
}
