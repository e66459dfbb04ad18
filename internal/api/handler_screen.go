package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"mealview/internal/model"
	"mealview/internal/parse"
	"mealview/internal/viewer"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const screenTemplate = "screen.tmpl"

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// screenData is everything the screen template reads. It is derived from a
// single state snapshot.
type screenData struct {
	Labels         Labels
	Phase          string
	Recipe         *model.Recipe
	Paragraphs     []string
	RefreshSeconds int
}

func (h *Handler) screenData(s viewer.State) screenData {
	data := screenData{
		Labels:         h.labels,
		Phase:          string(s.Phase),
		RefreshSeconds: h.refreshSeconds,
	}
	if s.Phase == viewer.PhaseIdle {
		// Not mounted yet; from the user's point of view it is already loading.
		data.Phase = string(viewer.PhaseLoading)
	}
	if s.Phase == viewer.PhaseLoaded && s.Recipe != nil {
		data.Recipe = s.Recipe
		data.Paragraphs = parse.Paragraphs(s.Recipe.Instructions)
	}
	return data
}

// GetScreen handles GET / and renders the caller's viewer.
func (h *Handler) GetScreen(c *gin.Context) {
	s := h.settle(c.Request.Context(), viewerFrom(c))
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, screenTemplate, h.screenData(s))
}

// PostReload handles the "load another" form. Presses while a fetch is in
// flight are ignored.
func (h *Handler) PostReload(c *gin.Context) {
	viewerFrom(c).LoadAnother()
	c.Redirect(http.StatusSeeOther, "/")
}
