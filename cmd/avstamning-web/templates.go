package main

import (
	"html/template"
	"net/http"
	"path/filepath"

	"avstamning.dev/reconcile/internal/obs"
)

var templates map[string]*template.Template

func InitTemplates(root string) {
	templates = make(map[string]*template.Template)

	layouts, err := filepath.Glob(filepath.Join(root, "layout", "*.tmpl"))
	if err != nil {
		obs.Log("%v", err)
	}
	views, err := filepath.Glob(filepath.Join(root, "views", "*.tmpl"))
	if err != nil {
		obs.Log("%v", err)
	}

	for _, view := range views {
		files := append(append([]string{}, layouts...), view)
		templates[filepath.Base(view)] = template.Must(template.New(filepath.Base(view)).ParseFiles(files...))
	}
}

func RenderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	name += ".tmpl"
	tmpl, ok := templates[name]
	if !ok {
		obs.Log("the template %s does not exist", name)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		obs.Log("%v", err)
	}
}
