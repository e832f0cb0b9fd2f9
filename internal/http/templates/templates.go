package templates

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
)

//go:embed *.html
var files embed.FS

func funcs() template.FuncMap {
	return template.FuncMap{
		// pageURL keeps the current filters and swaps the page number.
		"pageURL": func(q url.Values, page int) string {
			out := url.Values{}
			for k, v := range q {
				out[k] = v
			}
			out.Set("page", strconv.Itoa(page))
			return "?" + out.Encode()
		},
		"add": func(a, b int) int { return a + b },
	}
}

// Load parses every embedded page and fragment.
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs()).ParseFS(files, "*.html")
}

func MustLoad() *template.Template {
	return template.Must(Load())
}
