package clientapp

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/navigation"
	"github.com/phillip-england/shipdesk/internal/validation"
)

const msgBadCredentials = "Invalid username or password."

func (s *server) loginRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.loginPage(w, r)
	case http.MethodPost:
		s.login(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) loginPage(w http.ResponseWriter, r *http.Request) {
	if sc, err := s.sessions.Load(r); err == nil {
		http.Redirect(w, r, navigation.DashboardPath(sc.User.Role), http.StatusFound)
		return
	}
	q := r.URL.Query()
	data := s.loginData(r)
	data.Error = q.Get("error")
	data.Message = q.Get("message")
	data.Signup = q.Get("form") == "signup"
	s.renderPage(w, r, data)
}

func (s *server) loginData(r *http.Request) pageData {
	return pageData{
		AppName:   s.cfg.AppName,
		Title:     "Sign in",
		CSRFField: csrf.TemplateField(r),
		status:    http.StatusOK,
		tmpl:      s.loginTmpl,
	}
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	if !postForm(w, r, navigation.LoginPath) {
		return
	}
	username := trimmed(r.PostForm, "username")
	password := strings.TrimSpace(r.PostFormValue("password"))

	data := s.loginData(r)
	data.Form = r.PostForm
	data.Form.Del("password")

	if res := validation.LoginForm(username, password); !res.Valid {
		data.Error = res.Message()
		data.status = http.StatusUnprocessableEntity
		s.renderPage(w, r, data)
		return
	}

	auth, err := s.api.Login(r.Context(), username, password)
	if err != nil {
		s.logFor(r).Info().Err(err).Str("username", username).Msg("login rejected")
		data.Error = loginMessage(err)
		data.status = http.StatusUnauthorized
		s.renderPage(w, r, data)
		return
	}
	if err := s.sessions.Save(w, *auth); err != nil {
		s.logFor(r).Error().Err(err).Msg("session save failed")
		data.Error = "Unable to start a session. Please try again."
		data.status = http.StatusBadGateway
		s.renderPage(w, r, data)
		return
	}
	http.Redirect(w, r, navigation.DashboardPath(auth.Role), http.StatusFound)
}

// loginMessage reports a rejected login as bad credentials rather than an expired session.
func loginMessage(err error) string {
	if apiclient.IsUnauthorized(err) {
		return msgBadCredentials
	}
	return apiclient.MessageOf(err)
}

func (s *server) signup(w http.ResponseWriter, r *http.Request) {
	if !postForm(w, r, navigation.LoginPath+"?form=signup") {
		return
	}
	username := trimmed(r.PostForm, "username")
	email := trimmed(r.PostForm, "email")
	password := strings.TrimSpace(r.PostFormValue("password"))
	role := model.Role(trimmed(r.PostForm, "role"))
	if role != model.RoleEmployee {
		role = model.RoleCustomer
	}

	data := s.loginData(r)
	data.Signup = true
	data.Form = r.PostForm
	data.Form.Del("password")

	if res := validation.SignupForm(username, email, password); !res.Valid {
		data.Error = res.Message()
		data.status = http.StatusUnprocessableEntity
		s.renderPage(w, r, data)
		return
	}

	auth, err := s.api.Register(r.Context(), model.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		s.logFor(r).Info().Err(err).Str("username", username).Msg("signup rejected")
		data.Error = registrationMessage(err)
		data.status = statusFor(err)
		s.renderPage(w, r, data)
		return
	}
	if err := s.sessions.Save(w, *auth); err != nil {
		s.logFor(r).Error().Err(err).Msg("session save failed")
		redirectWith(w, r, navigation.LoginPath, "message", "Account created successfully! Please sign in.")
		return
	}
	redirectWith(w, r, navigation.DashboardPath(auth.Role), "message", "Account created successfully!")
}

// registrationMessage prefers per-field validation errors over the summary message.
func registrationMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && len(apiErr.ValidationErrors) > 0 {
		fields := make([]string, 0, len(apiErr.ValidationErrors))
		for field := range apiErr.ValidationErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		msgs := make([]string, 0, len(fields))
		for _, field := range fields {
			msgs = append(msgs, apiErr.ValidationErrors[field])
		}
		return strings.Join(msgs, ", ")
	}
	return apiclient.MessageOf(err)
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sessions.Clear(w)
	redirectWith(w, r, navigation.LoginPath, "message", "You have been signed out.")
}
