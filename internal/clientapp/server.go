package clientapp

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/config"
	"github.com/phillip-england/shipdesk/internal/metrics"
	"github.com/phillip-england/shipdesk/internal/middleware"
	"github.com/phillip-england/shipdesk/internal/model"
	"github.com/phillip-england/shipdesk/internal/navigation"
	"github.com/phillip-england/shipdesk/internal/render"
	"github.com/phillip-england/shipdesk/internal/session"
)

//go:embed templates/*.html assets/app.css assets/app.js
var templatesFS embed.FS

const metricsNamespace = "shipdesk"

type Config struct {
	AppName        string
	Addr           string
	APIBaseURL     string
	APITimeout     time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CookieSecure   bool
	CSRFKey        []byte
	MetricsEnabled bool
}

// ConfigFrom narrows the process configuration to what the web client needs.
func ConfigFrom(c *config.Config) Config {
	return Config{
		AppName:        c.App.Name,
		Addr:           c.HTTP.Addr,
		APIBaseURL:     c.API.BaseURL,
		APITimeout:     c.API.Timeout,
		ReadTimeout:    c.HTTP.ReadTimeout,
		WriteTimeout:   c.HTTP.WriteTimeout,
		CookieSecure:   c.Session.CookieSecure,
		CSRFKey:        c.Session.CSRFKey,
		MetricsEnabled: c.Metrics.Enabled,
	}
}

type server struct {
	cfg      Config
	api      *apiclient.Client
	sessions *session.Manager
	metrics  *metrics.Metrics
	log      zerolog.Logger
	now      func() time.Time

	loginTmpl    *template.Template
	employeeTmpl *template.Template
	customerTmpl *template.Template

	employeeViews map[string]viewFunc
	customerViews map[string]viewFunc
}

func newServer(cfg Config, api *apiclient.Client, log zerolog.Logger, m *metrics.Metrics) *server {
	s := &server{
		cfg:          cfg,
		api:          api,
		sessions:     session.NewManager(api, cfg.CookieSecure),
		metrics:      m,
		log:          log,
		now:          time.Now,
		loginTmpl:    parsePage("templates/login.html"),
		employeeTmpl: parsePage("templates/employee.html", "templates/employee_shipments.html", "templates/employee_directory.html", "templates/employee_reports.html"),
		customerTmpl: parsePage("templates/customer.html"),
	}
	s.employeeViews = map[string]viewFunc{
		"dashboard": s.employeeDashboard,
		"register":  s.registerShipmentView,
		"all":       s.allShipmentsView,
		"companies": s.companiesView,
		"offices":   s.officesView,
		"employees": s.employeesView,
		"clients":   s.customersView,
		"reports":   s.reportsView,
		"pricing":   s.pricingView,
	}
	s.customerViews = map[string]viewFunc{
		"dashboard": s.customerDashboard,
		"sent":      s.customerSentView,
		"received":  s.customerReceivedView,
		"expected":  s.customerExpectedView,
		"all":       s.customerAllView,
	}
	return s
}

func parsePage(files ...string) *template.Template {
	patterns := append([]string{"templates/layout.html"}, files...)
	return template.Must(template.New("page").Funcs(pageFuncs()).ParseFS(templatesFS, patterns...))
}

func Run(ctx context.Context, cfg Config, log zerolog.Logger) error {
	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(log.With().Str("component", "apiclient").Logger()),
	}
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(metricsNamespace)
		opts = append(opts, apiclient.WithObserver(m.ObserveUpstream))
	}
	s := newServer(cfg, apiclient.New(cfg.APIBaseURL, opts...), log, m)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("api", cfg.APIBaseURL).Msg("client listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// routes registers every page without CSRF protection; handler adds it.
func (s *server) routes() *mux.Router {
	router := mux.NewRouter()
	if s.metrics != nil {
		router.Use(middleware.Observe(routeTemplate, s.metrics.ObserveHTTP))
		router.Handle("/metrics", s.metrics.Handler())
	}

	router.HandleFunc("/", s.rootRoute)
	router.HandleFunc("/login", s.loginRoute)
	router.HandleFunc("/signup", s.signup)
	router.HandleFunc("/logout", s.logout)
	router.HandleFunc("/healthz", s.healthz)
	router.HandleFunc("/assets/{file}", s.assetFile)

	employee := s.sessions.RequireRole(model.RoleEmployee, navigation.LoginPath, s.denied)
	router.Handle("/employee", middleware.Chain(s.dispatcher(s.employeeViews, navigation.EmployeeViews(), navigation.EmployeePath, s.employeeTmpl), employee))
	router.Handle("/employee/shipments", middleware.Chain(http.HandlerFunc(s.createShipmentProxy), employee))
	router.Handle("/employee/shipments/{id:[0-9]+}", middleware.Chain(http.HandlerFunc(s.updateShipmentProxy), employee))
	router.Handle("/employee/shipments/{id:[0-9]+}/status", middleware.Chain(http.HandlerFunc(s.updateShipmentStatusProxy), employee))
	router.Handle("/employee/shipments/{id:[0-9]+}/delete", middleware.Chain(http.HandlerFunc(s.deleteShipmentProxy), employee))
	router.Handle("/employee/shipments/{id:[0-9]+}/waybill.pdf", middleware.Chain(http.HandlerFunc(s.employeeWaybill), employee))
	router.Handle("/employee/companies", middleware.Chain(http.HandlerFunc(s.createCompanyProxy), employee))
	router.Handle("/employee/companies/{id:[0-9]+}", middleware.Chain(http.HandlerFunc(s.updateCompanyProxy), employee))
	router.Handle("/employee/companies/{id:[0-9]+}/delete", middleware.Chain(http.HandlerFunc(s.deleteCompanyProxy), employee))
	router.Handle("/employee/offices", middleware.Chain(http.HandlerFunc(s.createOfficeProxy), employee))
	router.Handle("/employee/offices/{id:[0-9]+}", middleware.Chain(http.HandlerFunc(s.updateOfficeProxy), employee))
	router.Handle("/employee/offices/{id:[0-9]+}/delete", middleware.Chain(http.HandlerFunc(s.deleteOfficeProxy), employee))
	router.Handle("/employee/employees", middleware.Chain(http.HandlerFunc(s.createEmployeeProxy), employee))
	router.Handle("/employee/employees/{id:[0-9]+}", middleware.Chain(http.HandlerFunc(s.updateEmployeeProxy), employee))
	router.Handle("/employee/employees/{id:[0-9]+}/delete", middleware.Chain(http.HandlerFunc(s.deleteEmployeeProxy), employee))
	router.Handle("/employee/customers", middleware.Chain(http.HandlerFunc(s.createCustomerProxy), employee))
	router.Handle("/employee/customers/import", middleware.Chain(http.HandlerFunc(s.importCustomersProxy), employee))
	router.Handle("/employee/customers/{id:[0-9]+}", middleware.Chain(http.HandlerFunc(s.updateCustomerProxy), employee))
	router.Handle("/employee/customers/{id:[0-9]+}/delete", middleware.Chain(http.HandlerFunc(s.deleteCustomerProxy), employee))
	router.Handle("/employee/pricing", middleware.Chain(http.HandlerFunc(s.updatePricingProxy), employee))
	router.Handle("/employee/reports/export", middleware.Chain(http.HandlerFunc(s.exportReport), employee))

	customer := s.sessions.RequireRole(model.RoleCustomer, navigation.LoginPath, s.denied)
	router.Handle("/customer", middleware.Chain(s.dispatcher(s.customerViews, navigation.CustomerViews(), navigation.CustomerPath, s.customerTmpl), customer))
	router.Handle("/customer/shipments/{id:[0-9]+}/waybill.pdf", middleware.Chain(http.HandlerFunc(s.customerWaybill), customer))

	return router
}

func (s *server) handler() http.Handler {
	csp := strings.Join([]string{
		"default-src 'self'",
		"style-src 'self'",
		"img-src 'self' data:",
		"script-src 'self'",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	protect := csrf.Protect(
		s.cfg.CSRFKey,
		csrf.Secure(s.cfg.CookieSecure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(s.csrfFailure)),
	)

	return middleware.Chain(
		s.routes(),
		middleware.RequestLogger(s.log),
		middleware.Recoverer,
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{ContentSecurityPolicy: csp}),
		s.markPlaintext,
		protect,
	)
}

// markPlaintext tells the CSRF layer that requests arrive over plain HTTP, which
// disables its TLS-only referer check in local setups.
func (s *server) markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.CookieSecure {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) csrfFailure(w http.ResponseWriter, r *http.Request) {
	s.logFor(r).Warn().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("csrf check failed")
	http.Error(w, "Forbidden - the form expired, reload the page and try again", http.StatusForbidden)
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

func (s *server) rootRoute(w http.ResponseWriter, r *http.Request) {
	sc, err := s.sessions.Load(r)
	if err != nil {
		http.Redirect(w, r, navigation.LoginPath, http.StatusFound)
		return
	}
	http.Redirect(w, r, navigation.DashboardPath(sc.User.Role), http.StatusFound)
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

var assetTypes = map[string]string{
	"app.css": "text/css; charset=utf-8",
	"app.js":  "text/javascript; charset=utf-8",
}

func (s *server) assetFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := mux.Vars(r)["file"]
	contentType, ok := assetTypes[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	body, err := templatesFS.ReadFile("assets/" + name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(body)
}

// denied answers a signed-in user whose role does not own the page.
func (s *server) denied(w http.ResponseWriter, r *http.Request) {
	redirectWith(w, r, navigation.LoginPath, "error", "You do not have permission to access this page.")
}

func (s *server) logFor(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

func pageFuncs() template.FuncMap {
	funcs := render.Funcs()
	funcs["selected"] = selectedID
	return funcs
}
