package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/core/ports/primary"
	auth2 "gitlab.com/codelab.net/internal/core/services/auth"
	"gitlab.com/codelab.net/internal/core/services/problem"
	"gitlab.com/codelab.net/internal/core/services/sheet"
	"gitlab.com/codelab.net/internal/core/services/submission"
	"gitlab.com/codelab.net/internal/core/services/user"
	"gitlab.com/codelab.net/internal/handlers"
	"gitlab.com/codelab.net/internal/handlers/auth"
	"gitlab.com/codelab.net/internal/handlers/problems"
	"gitlab.com/codelab.net/internal/handlers/response"
	"gitlab.com/codelab.net/internal/handlers/sheets"
	"gitlab.com/codelab.net/internal/handlers/submissions"
	"gitlab.com/codelab.net/internal/handlers/users"
)

type ServiceProvider struct {
	problemService    problem.IProblemService
	submissionService submission.ISubmissionService
	sheetService      sheet.ISheetService
	userService       user.IUserService

	ggAuth         auth2.IAuthService
	localAuth      auth2.IAuthService
	accountService auth2.IAccountService
}

func NewServiceProvider(
	problemService problem.IProblemService,
	submissionService submission.ISubmissionService,
	sheetService sheet.ISheetService,
	userService user.IUserService,
	ggAuth auth2.IAuthService,
	localAuth auth2.IAuthService,
	accountService auth2.IAccountService,
) *ServiceProvider {
	return &ServiceProvider{
		problemService:    problemService,
		submissionService: submissionService,
		sheetService:      sheetService,
		userService:       userService,
		ggAuth:            ggAuth,
		localAuth:         localAuth,
		accountService:    accountService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	middleware      *handlers.MiddlewareProvider
	ggAuthConfig    *config.GGAuthConfig
	logger          primary.Logger
}

func NewServer(
	port int,
	serviceName string,
	serviceProvider ServiceProvider,
	middleware *handlers.MiddlewareProvider,
	ggAuthConfig *config.GGAuthConfig,
	logger primary.Logger,
) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		middleware:      middleware,
		ggAuthConfig:    ggAuthConfig,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteSuccess(w, http.StatusOK, "ok", map[string]string{"service": s.ServiceName})
	}).Methods("GET")

	auth.NewHandler(s.ggAuthConfig, s.logger).RegisterRoutes(r, &auth.ServiceDependencies{
		GGAuthService:    s.ServiceProvider.ggAuth,
		LocalAuthService: s.ServiceProvider.localAuth,
		AccountService:   s.ServiceProvider.accountService,
	})
	problems.NewHandler(s.ServiceProvider.problemService, s.logger).RegisterRoutes(r, s.middleware)
	submissions.NewHandler(s.ServiceProvider.submissionService, s.logger).RegisterRoutes(r, s.middleware)
	sheets.NewHandler(s.ServiceProvider.sheetService, s.logger).RegisterRoutes(r, s.middleware)
	users.NewHandler(s.ServiceProvider.userService, s.logger).RegisterRoutes(r, s.middleware)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout: 15 * time.Second,
		// must exceed the judge polling budget or submit responses get cut off
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
