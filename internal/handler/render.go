package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

//go:embed templates
var templatesFS embed.FS

type renderer struct {
	pages map[string]*template.Template
}

// view передаёт в шаблон заголовок, сессию для навигации и данные страницы.
type view struct {
	Title   string
	Session *model.Session
	Data    any
}

func newRenderer(funcs template.FuncMap) (*renderer, error) {
	base := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"pages": func(total int) []int {
			out := make([]int, total)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
		"initial": func(s string) string {
			s = strings.TrimSpace(s)
			if s == "" {
				return "C"
			}
			return strings.ToUpper(string([]rune(s)[:1]))
		},
	}
	for name, fn := range funcs {
		base[name] = fn
	}

	files, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	r := &renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New("layout.html").Funcs(base).ParseFS(templatesFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render отрисовывает страницу name в буфер и только затем отправляет ответ,
// чтобы ошибка шаблона не оставляла наполовину записанную страницу.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := h.views.pages[name]
	if !ok {
		h.logger.Error("unknown template", zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := t.Execute(&buf, view{
		Title:   title,
		Session: currentSession(r),
		Data:    data,
	})
	if err != nil {
		h.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// forbidden отрисовывает страницу отказа в доступе.
func (h *Handler) forbidden(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, "forbidden", "Access denied", nil)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "notfound", "Page not found", nil)
}
