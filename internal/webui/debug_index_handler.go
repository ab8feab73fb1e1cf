package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

// debugDumper bypasses String methods so dumps show every field.
var debugDumper = spew.ConfigState{Indent: " ", DisableMethods: true, SortKeys: true}

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	var buf bytes.Buffer
	err := webUI.debug.Execute(&buf, debugData{
		Title: title,
		Pre:   debugDumper.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "rows":
		data = webUI.Dataset.Rows()
		title = "Dataset - Rows (" + webUI.Dataset.Source() + ")"
	case "alternatives":
		data = webUI.Registry.Alternatives()
		title = "Registry - Alternatives"
	case "config":
		cfg := webUI.Config
		cfg.ApiKeys = nil
		data = cfg
		title = "Configuration"
	case "imports":
		rec, ok, err := webUI.RowDB.LastImport(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		counts, err := webUI.RowDB.TableCounts(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = map[string]interface{}{"lastImport": rec, "found": ok, "tableCounts": counts}
		title = "Row store - Imports"
	default:
		data = map[string]string{
			"error": "Please use one of the following: rows, alternatives, config, imports.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
