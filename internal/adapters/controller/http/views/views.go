package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/session"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.In(location.Location()).Format("02.01.2006 15:04")
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.In(location.Location()).Format("02.01.2006")
	},
	"stars": func(rating int) string {
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	},
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// Templates parses every page template. Pages share the "header" and
// "footer" partials from layout.html.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

// Static serves the embedded css and js.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Render writes an HTML page. The signed in user is available to every
// template as .Session.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = session.Get(c)
	c.HTML(status, name, data)
}

func Error(c *gin.Context, status int, message string) {
	Render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}
