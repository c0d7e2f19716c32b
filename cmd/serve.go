package cmd

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"schema-sync/internal/diff"
	"schema-sync/internal/report"
	"schema-sync/internal/script"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compare/generate operations over JSON HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /connections", handleConnections)
		mux.HandleFunc("GET /compare", handleCompare)
		mux.HandleFunc("POST /generate", handleGenerate)

		log.Printf("listening on %s", serveAddr)
		return http.ListenAndServe(serveAddr, mux)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// handleConnections lists the configured pairs. DSNs stay server-side.
func handleConnections(w http.ResponseWriter, r *http.Request) {
	connections, err := GetConnections()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type connView struct {
		ID            string   `json:"id"`
		SourceDriver  string   `json:"source_driver"`
		TargetDriver  string   `json:"target_driver"`
		ExcludeTables []string `json:"exclude_tables,omitempty"`
	}
	views := make([]connView, 0, len(connections))
	for _, c := range connections {
		views = append(views, connView{
			ID:            c.ID,
			SourceDriver:  c.Source.Driver,
			TargetDriver:  c.Target.Driver,
			ExcludeTables: c.ExcludeTables,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func handleCompare(w http.ResponseWriter, r *http.Request) {
	conn, err := GetConnection(r.URL.Query().Get("conn"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	src, tgt, err := captureBoth(conn)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, report.Build(src, tgt, d, conn.ExcludeTables))
}

type generateRequest struct {
	Conn       string              `json:"conn"`
	Tables     []string            `json:"tables"`
	Columns    map[string][]string `json:"columns"`
	AllColumns bool                `json:"all_columns"`
	OutputPath string              `json:"output_path"`
}

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := GetConnection(req.Conn)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	src, tgt, err := captureBoth(conn)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	sel := script.Selection{Tables: req.Tables, Columns: req.Columns}
	if req.AllColumns {
		sel = script.AllColumns(src, req.Tables)
	}
	text := script.Build(src, tgt, d, sel, conn.ID, time.Now())

	if req.OutputPath != "" {
		if dir := filepath.Dir(req.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
		}
		if err := os.WriteFile(req.OutputPath, []byte(text), 0o644); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "path": req.OutputPath})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"script": text})
}
