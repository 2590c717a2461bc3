package components

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/rubiojr/parems/cmd/web/components/types"
)

// PageWindow returns the page numbers shown around current, at most size of
// them.
func PageWindow(current, total, size int) []int {
	if total <= 1 {
		return nil
	}
	start := max(1, current-size/2)
	end := min(total, start+size-1)
	start = max(1, end-size+1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// pageNumbers is empty when there is no way to link to other pages.
func pageNumbers(data types.PageData) []int {
	if data.PageURL == nil {
		return nil
	}
	return PageWindow(data.CurrentPage, data.TotalPages, 9)
}

func pageURL(data types.PageData, page int) templ.SafeURL {
	return templ.SafeURL(data.PageURL(page))
}

func titleURL(title string) templ.SafeURL {
	return templ.SafeURL("/api/paremiotipus/" + url.PathEscape(title))
}

func fontOptions(fonts []types.Option) []types.Option {
	return append([]types.Option{{Value: "", Label: "Totes les fonts"}}, fonts...)
}

func perPageValue(n int) string {
	if n == 0 {
		return "infinit"
	}
	return strconv.Itoa(n)
}

// String renders c to a string. Used by tests and the CLI.
func String(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
