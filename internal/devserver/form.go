package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-signup/pkg/render"
	"github.com/goliatone/go-signup/pkg/signup"
)

// Form actions posted by the HTML form buttons.
const (
	actionCountry = "country"
	actionSubmit  = "submit"
)

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	form, err := s.newForm()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderForm(w, r, form, http.StatusOK)
}

// handleFormPost serves the no-JS round trip: either a country change that
// repopulates the regions, or a submit.
func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	values := signup.FormValues{
		Name:    r.PostForm.Get(signup.FieldName),
		Email:   r.PostForm.Get(signup.FieldEmail),
		Country: r.PostForm.Get(signup.FieldCountry),
		Region:  r.PostForm.Get(signup.FieldRegion),
	}
	count, _ := strconv.Atoi(r.PostForm.Get(render.HiddenSubmitCount))

	form, err := s.newForm(signup.WithValues(values), signup.WithSubmitCount(count))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	switch strings.TrimSpace(r.PostForm.Get("action")) {
	case actionCountry:
		if err := form.SelectCountry(values.Country); err != nil && !errors.Is(err, signup.ErrUnknownCountry) {
			s.fail(w, r, err)
			return
		}
		s.renderForm(w, r, form, http.StatusOK)
		return
	case "", actionSubmit:
	default:
		http.Error(w, "unknown form action", http.StatusBadRequest)
		return
	}

	err = form.Submit(r.Context())
	var validationErr *signup.ValidationError
	var submissionErr *signup.SubmissionError
	switch {
	case err == nil:
		s.renderForm(w, r, form, http.StatusOK)
	case errors.As(err, &validationErr):
		s.renderForm(w, r, form, http.StatusUnprocessableEntity)
	case errors.As(err, &submissionErr):
		s.renderForm(w, r, form, http.StatusOK)
	default:
		s.fail(w, r, err)
	}
}

func (s *Server) newForm(opts ...signup.FormOption) (*signup.Form, error) {
	base := []signup.FormOption{
		signup.WithDataset(s.dataset),
		signup.WithLogger(s.logger),
	}
	return signup.NewForm(s.submitter, append(base, opts...)...)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, form *signup.Form, status int) {
	renderer, err := s.registry.Resolve(r.URL.Query().Get("format"), s.cfg.Renderer)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	state := form.State()
	locale := s.cfg.Locale
	if q := strings.TrimSpace(r.URL.Query().Get("locale")); q != "" {
		locale = q
	}
	view := render.Build(state, form.Countries(), render.RenderOptions{
		Locale:     locale,
		Translator: s.translator,
		Action:     "/",
		Hidden:     []render.HiddenField{render.SubmitCount(state.SubmitCount)},
	})

	out, err := renderer.Render(r.Context(), view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("form request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
