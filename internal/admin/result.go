package admin

import "backoffice/internal/pkg/apperrors"

type Kind int

const (
	KindRender Kind = iota + 1
	KindRedirect
)

func (k Kind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Result describes what the caller should send back: a view to render or a
// route (or local URL) to redirect to. Status is only set on render results
// that must not be answered with 200.
type Result struct {
	Kind        Kind
	View        string
	Route       string
	URL         string
	Params      map[string]any
	Status      int
	Error       string
	FieldErrors []apperrors.FieldError
}

func Render(view string, params map[string]any) *Result {
	return &Result{Kind: KindRender, View: view, Params: params}
}

func Redirect(route string, params map[string]any) *Result {
	return &Result{Kind: KindRedirect, Route: route, Params: params}
}

func RedirectURL(url string) *Result {
	return &Result{Kind: KindRedirect, URL: url}
}

func (r *Result) IsRedirect() bool {
	return r.Kind == KindRedirect
}
