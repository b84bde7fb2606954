package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/chartparse/chart"
	"github.com/dhamidi/chartparse/format"
	"github.com/dhamidi/chartparse/grammar"
	"github.com/dhamidi/chartparse/tokens"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("chartparse.ui")

type Server struct {
	grammar    *grammar.Grammar
	privileged []grammar.Symbol
	staticFS   fs.FS
	templateFS fs.FS
	mux        *http.ServeMux
}

func NewServer(g *grammar.Grammar, privileged []grammar.Symbol) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	if _, err := template.ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		grammar:    g,
		privileged: privileged,
		staticFS:   staticFS,
		templateFS: templateFS,
		mux:        http.NewServeMux(),
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /parse", s.handleParse)
	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("GET /grammar", s.handleGrammar)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

// parseRequest is the JSON body accepted by POST /parse. Tokens wins over
// Sentence when both are given.
type parseRequest struct {
	Sentence string   `json:"sentence"`
	Tokens   []string `json:"tokens"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var sentence []string
	var query string

	if r.Method == http.MethodPost && isJSON(r.Header.Get("Content-Type")) {
		var req parseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Tokens != nil {
			sentence = tokens.Normalize(req.Tokens)
		} else {
			sentence = tokens.Split(req.Sentence)
		}
		query = strings.Join(sentence, " ")
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		if !r.Form.Has("q") {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		query = r.Form.Get("q")
		sentence = tokens.Split(query)
	}

	result := chart.Parse(sentence, s.grammar, s.privileged)
	log.Debugf("parse %q: %s", query, format.Summary(result))

	if acceptsJSON(r.Header.Get("Accept")) {
		data, err := format.BuildJSON(sentence, result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Errorf("encode %q: %s", query, err)
		}
		return
	}

	view, err := newChartView(query, sentence, result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "chart.html", view)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// acceptsJSON reports whether an Accept header lists application/json.
// Quality values are ignored.
func acceptsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, s.grammar.String())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Query      string
		Grammar    string
		Privileged []grammar.Symbol
	}{
		Grammar:    s.grammar.String(),
		Privileged: s.privileged,
	}
	s.render(w, "index.html", data)
}

type ChartView struct {
	Query    string
	Summary  string
	Success  bool
	Trees    []string
	Sections []SectionView
}

type SectionView struct {
	Position int
	Token    string
	Rows     []RowView
}

type RowView struct {
	ID         int
	Kind       string
	Production string
	Span       string
	History    string
	Derivation bool
}

func newChartView(query string, sentence []string, result chart.Result) (ChartView, error) {
	view := ChartView{
		Query:   query,
		Summary: format.Summary(result),
		Success: result.Succeeded(),
	}

	trees, err := result.Trees()
	if err != nil {
		return ChartView{}, err
	}
	for _, tree := range trees {
		view.Trees = append(view.Trees, tree.String())
	}

	derivations := make(map[int]bool, len(result.Derivations))
	for _, id := range result.Derivations {
		derivations[id] = true
	}

	kinds := [3]string{"predicted", "scanned", "completed"}
	for i, sec := range result.Table {
		sv := SectionView{Position: i}
		if i > 0 && i <= len(sentence) {
			sv.Token = sentence[i-1]
		}
		for k, rows := range sec.Collections() {
			for _, row := range rows {
				history := make([]string, len(row.History))
				for j, id := range row.History {
					history[j] = fmt.Sprint(id)
				}
				sv.Rows = append(sv.Rows, RowView{
					ID:         row.ID,
					Kind:       kinds[k],
					Production: row.Production.String(),
					Span:       row.Span.String(),
					History:    "[" + strings.Join(history, ", ") + "]",
					Derivation: k == 2 && derivations[row.ID],
				})
			}
		}
		view.Sections = append(view.Sections, sv)
	}
	return view, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS serves files from primaryPath on disk when present, so templates
// can be edited without rebuilding, and falls back to secondary.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
