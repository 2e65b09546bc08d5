package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/syncromatics/go-kit/v2/log"
	"golang.org/x/exp/slices"

	"psychrometric-calculator/internal/calculator"
)

//go:embed templates/index.html
var templates embed.FS

var allowedMethods = []string{http.MethodGet, http.MethodPost}

type page struct {
	DryBulb          string
	RelativeHumidity string
	Result           *calculator.Result
}

type handler struct {
	calc *calculator.Calculator
	page *template.Template
}

// NewHandler serves the calculator form at the root path
func NewHandler(calc *calculator.Calculator) (http.Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse page template")
	}

	mux := http.NewServeMux()
	mux.Handle("/", &handler{calc, tmpl})
	return mux, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if !slices.Contains(allowedMethods, r.Method) {
		w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	data := &page{}
	if r.Method == http.MethodPost {
		data.DryBulb = r.PostFormValue("db_temp")
		data.RelativeHumidity = r.PostFormValue("rh")
		data.Result = h.calc.Calculate(data.DryBulb, data.RelativeHumidity)

		calculations.WithLabelValues(data.Result.Outcome.String()).Inc()
		log.Debug("calculated properties",
			"outcome", data.Result.Outcome,
			"db_temp", data.DryBulb,
			"rh", data.RelativeHumidity,
			"err", data.Result.Err)
	}

	var buf bytes.Buffer
	err := h.page.Execute(&buf, data)
	if err != nil {
		log.Info("failed to render page",
			"err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
