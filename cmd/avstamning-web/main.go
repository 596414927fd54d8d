package main

import (
	"flag"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"avstamning.dev/reconcile/internal/obs"
)

func newRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", handleUploadForm).Methods("GET")
	router.HandleFunc("/reconcile", handleReconcile).Methods("POST")
	return router
}

func main() {
	addr := flag.String("addr", ":8082", "listen address")
	templatesDir := flag.String("templates", "templates", "path to the templates directory")
	flag.Parse()

	InitTemplates(filepath.Clean(*templatesDir))

	obs.Log("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, newRouter()); err != nil {
		obs.Log("server error: %v", err)
	}
}
