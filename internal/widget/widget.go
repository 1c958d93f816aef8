// Package widget renders a handful of HTML form controls.
//
// Widget is a closed set of variants. Render switches over them, so adding a
// variant means adding its case there.
package widget

import (
	"fmt"
	"html"
	"strings"
)

type Widget interface {
	widget()
}

type Button struct {
	Text    string
	OnClick string
}

type TextBox struct {
	Name        string
	Placeholder string
}

// Form wraps Children in a <form>. An empty Method renders as GET.
type Form struct {
	Action   string
	Method   string
	Children []Widget
}

// Break is a line break between widgets.
type Break struct{}

func (Button) widget()  {}
func (TextBox) widget() {}
func (Form) widget()    {}
func (Break) widget()   {}

func Render(w Widget) string {
	switch w := w.(type) {
	case Button:
		return fmt.Sprintf(`<button onclick="%s">%s</button>`, attr(w.OnClick), html.EscapeString(w.Text))
	case TextBox:
		return fmt.Sprintf(`<input type="text" name="%s" placeholder="%s">`, attr(w.Name), attr(w.Placeholder))
	case Form:
		method := w.Method
		if method == "" {
			method = "GET"
		}
		return fmt.Sprintf(`<form action="%s" method="%s">%s</form>`, attr(w.Action), attr(method), RenderAll(w.Children...))
	case Break:
		return "<br>"
	case nil:
		return ""
	default:
		panic(fmt.Sprintf("widget: unknown variant %T", w))
	}
}

func RenderAll(ws ...Widget) string {
	var sb strings.Builder
	for _, w := range ws {
		sb.WriteString(Render(w))
	}
	return sb.String()
}

func attr(s string) string {
	return html.EscapeString(s)
}
