// Command avstamning-web is the out-of-core-scope web upload wrapper named
// in spec §1: a thin multipart-upload shell around engine.Run and
// combined.Write, grounded on the teacher's gorilla/mux + html/template
// request handling (main.go, templates.go) with none of its git-backed
// ledger storage, OAuth, or account model — those are a different product.
package main

import (
	"io"
	"net/http"
	"os"

	"avstamning.dev/reconcile/internal/combined"
	"avstamning.dev/reconcile/internal/engine"
	"avstamning.dev/reconcile/internal/obs"
	"avstamning.dev/reconcile/internal/tabular"
)

func handleUploadForm(w http.ResponseWriter, r *http.Request) {
	RenderTemplate(w, "upload", map[string]interface{}{})
}

func handleReconcile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		RenderTemplate(w, "upload", map[string]interface{}{"Error": "could not parse upload: " + err.Error()})
		return
	}

	bankPath, cleanupBank, err := saveUploadedFile(r, "bank")
	if err != nil {
		RenderTemplate(w, "upload", map[string]interface{}{"Error": err.Error()})
		return
	}
	defer cleanupBank()

	bokfPath, cleanupBokf, err := saveUploadedFile(r, "bokf")
	if err != nil {
		RenderTemplate(w, "upload", map[string]interface{}{"Error": err.Error()})
		return
	}
	defer cleanupBokf()

	bank, err := tabular.LoadBankTable(bankPath)
	if err != nil {
		RenderTemplate(w, "upload", map[string]interface{}{"Error": err.Error()})
		return
	}
	bokf, err := tabular.LoadBokfTable(bokfPath)
	if err != nil {
		RenderTemplate(w, "upload", map[string]interface{}{"Error": err.Error()})
		return
	}

	result := engine.Run(bank, bokf)
	rows := combined.Project(result)

	outPath, err := tempOutputPath()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(outPath)

	if err := combined.Write(rows, outPath); err != nil {
		obs.Log("output error: %v", err)
		http.Error(w, "failed to write combined workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="kombinerad.xlsx"`)
	http.ServeFile(w, r, outPath)
}

func saveUploadedFile(r *http.Request, field string) (path string, cleanup func(), err error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", field+"-*.upload")
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	tmp.Close()

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func tempOutputPath() (string, error) {
	tmp, err := os.CreateTemp("", "kombinerad-*.xlsx")
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	tmp.Close()
	return path, nil
}
