package main

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/OkuOrgil3757/business-calculator/internal/format"
)

func (s *server) templateFuncs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"currency":      format.Currency,
		"percent":       format.Percent,
		"count":         func(v int) string { return format.Count(float64(v)) },
		"metric":        format.Metric,
		"signed":        format.Signed,
		"optional":      format.Optional,
		"optionalCount": format.OptionalCount,
		"amount":        formAmount,
		"margin":        format.Plain,
		"signedIn":      func() bool { return s.auth != nil && s.auth.isAuthenticated(r) },
	}
}

// formAmount renders an input value, leaving zero fields blank.
func formAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return format.Plain(v)
}

func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	templates, err := template.New("layout.html").Funcs(s.templateFuncs(r)).ParseFiles(
		filepath.Join(s.templatesDir, "layout.html"),
		filepath.Join(s.templatesDir, "partials.html"),
		filepath.Join(s.templatesDir, page),
	)
	if err != nil {
		s.log.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
