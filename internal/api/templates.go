package api

import (
	"html/template"

	"github.com/pageza/pantry-recipes/backend/internal/types"
)

type pageData struct {
	Request  *types.RecipeRequest
	Servings int
	Response *types.RecipeResponse
}

var recipesPage = template.Must(template.New("recipes").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Pantry recipes</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
article { border-bottom: 1px solid #ddd; padding-bottom: 1rem; }
small { color: #666; }
</style>
</head>
<body>
<h1>Recipes</h1>
<p><small>
{{- if .Request.Ingredients}}Ingredients: {{range $i, $v := .Request.Ingredients}}{{if $i}}, {{end}}{{$v}}{{end}}{{else}}No ingredients given{{end}}
 &middot; Servings: {{.Servings}}
{{- if .Request.Dietary}} &middot; Dietary: {{range $i, $v := .Request.Dietary}}{{if $i}}, {{end}}{{$v}}{{end}}{{end}}
</small></p>
{{range .Response.Recipes}}
<article>
<h2>{{.Title}}</h2>
{{- if .Ingredients}}
<h3>Ingredients</h3>
<ul>{{range .Ingredients}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- if .Steps}}
<h3>Steps</h3>
<ol>{{range .Steps}}<li>{{.}}</li>{{end}}</ol>
{{- end}}
</article>
{{end}}
<footer><small>Generated by {{.Response.Provider}} ({{.Response.Model}})</small></footer>
</body>
</html>
`))
