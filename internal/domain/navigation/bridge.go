// Package navigation turns a selected chart label into a navigation intent
// for the host's router.
package navigation

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// RouteCountry is the route a selected country label navigates to.
const RouteCountry = "country"

// ErrEmptyLabel is returned when a selection resolves to an empty label.
var ErrEmptyLabel = errors.New("empty selection label")

// Intent is a navigation target handed to the router.
type Intent struct {
	Route string `json:"route"`
	Param string `json:"param"`
}

// Path renders the intent as a URL path, e.g. /country/France.
func (i Intent) Path() string {
	return "/" + i.Route + "/" + url.PathEscape(i.Param)
}

// Router is the collaborator that actually navigates.
type Router interface {
	Navigate(ctx context.Context, route, param string) error
}

// Bridge converts selections to intents. It performs no navigation itself.
type Bridge struct {
	router Router
}

// NewBridge creates a bridge that hands intents to router. A nil router
// makes OnSelect a pure translation.
func NewBridge(router Router) *Bridge {
	return &Bridge{router: router}
}

// OnSelect builds the country intent for label and passes it to the router.
func (b *Bridge) OnSelect(ctx context.Context, label string) (Intent, error) {
	if strings.TrimSpace(label) == "" {
		return Intent{}, ErrEmptyLabel
	}
	intent := Intent{Route: RouteCountry, Param: label}
	if b.router != nil {
		if err := b.router.Navigate(ctx, intent.Route, intent.Param); err != nil {
			return Intent{}, err
		}
	}
	return intent, nil
}
