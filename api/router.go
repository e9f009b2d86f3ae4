package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prasetyowira/kerjaku/api/middleware"
	"github.com/prasetyowira/kerjaku/constant"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler  *Handler
	router   *chi.Mux
	username string
	password string
}

// NewRouter creates a new router
func NewRouter(handler *Handler, username, password string) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger())

	return &Router{
		handler:  handler,
		router:   r,
		username: username,
		password: password,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	creds := map[string]string{
		r.username: r.password,
	}
	authed := r.router.With(chimw.BasicAuth("kerjaku", creds))

	// Mutating routes require Basic Auth
	authed.Post(constant.RouteListJobs, r.handler.CreateJob)
	authed.Put(constant.RouteJobByID, r.handler.UpdateJob)
	authed.Delete(constant.RouteJobByID, r.handler.DeleteJob)
	authed.Post(constant.RouteDrafts, r.handler.SaveDraft)
	authed.Delete(constant.RouteDraftByID, r.handler.DeleteDraft)
	authed.Delete(constant.RouteClearCache, r.handler.ClearCache)

	// Public routes
	r.router.Get(constant.RouteListJobs, r.handler.ListJobs)
	r.router.Get(constant.RouteNearbyJobs, r.handler.NearbyJobs)
	r.router.Get(constant.RouteJobByID, r.handler.GetJob)
	r.router.Get(constant.RouteJobQR, r.handler.JobQR)
	r.router.Get(constant.RouteStates, r.handler.States)
	r.router.Get(constant.RouteDistricts, r.handler.Districts)
	r.router.Get(constant.RouteUserRatings, r.handler.UserRatings)
	r.router.Get(constant.RouteEmployerStat, r.handler.EmployerStats)
	r.router.Get(constant.RouteDrafts, r.handler.ListDrafts)
	r.router.Get(constant.RouteDraftByID, r.handler.GetDraft)
	r.router.Post(constant.RouteSendOTP, r.handler.SendOTP)
	r.router.Post(constant.RouteVerifyOTP, r.handler.VerifyOTP)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
