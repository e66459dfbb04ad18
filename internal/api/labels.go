package api

import "strings"

// Labels is the text shown on the recipe screen.
type Labels struct {
	Lang        string
	Title       string
	Loading     string
	LoadAnother string
	Unavailable string
	TryAgain    string
}

var labelSets = []Labels{
	{
		Lang:        "en",
		Title:       "Random recipe",
		Loading:     "Loading...",
		LoadAnother: "Load another recipe",
		Unavailable: "Could not load a recipe.",
		TryAgain:    "Try again",
	},
	{
		Lang:        "pt-BR",
		Title:       "Receita aleatória",
		Loading:     "Carregando...",
		LoadAnother: "Carregar Nova Receita",
		Unavailable: "Não foi possível carregar uma receita.",
		TryAgain:    "Tentar novamente",
	},
}

// LabelsFor returns the label set for lang, matching case-insensitively on the
// full tag first and then on the primary language. English is the fallback.
func LabelsFor(lang string) Labels {
	lang = strings.TrimSpace(lang)
	for _, l := range labelSets {
		if strings.EqualFold(l.Lang, lang) {
			return l
		}
	}
	primary, _, _ := strings.Cut(lang, "-")
	for _, l := range labelSets {
		p, _, _ := strings.Cut(l.Lang, "-")
		if strings.EqualFold(p, primary) {
			return l
		}
	}
	return labelSets[0]
}
