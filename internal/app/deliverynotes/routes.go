// Package deliverynotes предоставляет маршруты для основного приложения.
package deliverynotes

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/albaranes-app/delivery-notes/internal/config"
	clientarchive "github.com/albaranes-app/delivery-notes/internal/http/handlers/client/archive"
	clientcreate "github.com/albaranes-app/delivery-notes/internal/http/handlers/client/create"
	clientlist "github.com/albaranes-app/delivery-notes/internal/http/handlers/client/list"
	clientread "github.com/albaranes-app/delivery-notes/internal/http/handlers/client/read"
	clientremove "github.com/albaranes-app/delivery-notes/internal/http/handlers/client/remove"
	clientupdate "github.com/albaranes-app/delivery-notes/internal/http/handlers/client/update"
	notecreate "github.com/albaranes-app/delivery-notes/internal/http/handlers/deliverynote/create"
	notelist "github.com/albaranes-app/delivery-notes/internal/http/handlers/deliverynote/list"
	notepdfget "github.com/albaranes-app/delivery-notes/internal/http/handlers/deliverynote/pdfget"
	noteread "github.com/albaranes-app/delivery-notes/internal/http/handlers/deliverynote/read"
	noteremove "github.com/albaranes-app/delivery-notes/internal/http/handlers/deliverynote/remove"
	notesign "github.com/albaranes-app/delivery-notes/internal/http/handlers/deliverynote/sign"
	mailsend "github.com/albaranes-app/delivery-notes/internal/http/handlers/mail/send"
	projectarchive "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/archive"
	projectbyclient "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/byclient"
	projectcreate "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/create"
	projectlist "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/list"
	projectread "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/read"
	projectremove "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/remove"
	projectupdate "github.com/albaranes-app/delivery-notes/internal/http/handlers/project/update"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/companydata"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/deleteuser"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/forgotpassword"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/getuser"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/invite"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/login"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/logo"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/personadata"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/register"
	"github.com/albaranes-app/delivery-notes/internal/http/handlers/user/validatemail"
	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
	"github.com/albaranes-app/delivery-notes/internal/lib/jwt"
	authservice "github.com/albaranes-app/delivery-notes/internal/services/auth"
	clientservice "github.com/albaranes-app/delivery-notes/internal/services/client"
	noteservice "github.com/albaranes-app/delivery-notes/internal/services/deliverynote"
	"github.com/albaranes-app/delivery-notes/internal/services/mailqueue"
	projectservice "github.com/albaranes-app/delivery-notes/internal/services/project"
	userservice "github.com/albaranes-app/delivery-notes/internal/services/user"
)

// Services - сервисы, которыми пользуются HTTP-обработчики.
type Services struct {
	Auth    *authservice.AuthService
	User    *userservice.Service
	Client  *clientservice.Service
	Project *projectservice.Service
	Note    *noteservice.Service
	MailPub *mailqueue.Publisher
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, jwtMaker jwt.Maker, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	maxUpload := cfg.MaxUploadMiB << 20

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/user/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/user/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/user/forgotpassword", forgotpassword.New(logger, s.Auth, cfg.ResetPasswordURL).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/user/getuser", getuser.New(logger, s.User).ServeHTTP)
			r.Delete("/user/deleteuser", deleteuser.New(logger, s.User).ServeHTTP)
			r.Put("/user/validatemail", validatemail.New(logger, s.Auth).ServeHTTP)
			r.Put("/user/personadata", personadata.New(logger, s.User).ServeHTTP)
			r.Patch("/user/companydata", companydata.New(logger, s.User).ServeHTTP)
			r.Patch("/user/logo", logo.New(logger, s.User, maxUpload).ServeHTTP)
			r.Post("/user/invite", invite.New(logger, s.Auth).ServeHTTP)

			r.Post("/client", clientcreate.New(logger, s.Client).ServeHTTP)
			r.Get("/client", clientlist.New(logger, s.Client, false).ServeHTTP)
			r.Get("/client/archived", clientlist.New(logger, s.Client, true).ServeHTTP)
			r.Get("/client/{id}", clientread.New(logger, s.Client).ServeHTTP)
			r.Put("/client/{id}", clientupdate.New(logger, s.Client).ServeHTTP)
			r.Put("/client/archive/{id}", clientarchive.New(logger, s.Client, true).ServeHTTP)
			r.Put("/client/restore/{id}", clientarchive.New(logger, s.Client, false).ServeHTTP)
			r.Delete("/client/{id}", clientremove.New(logger, s.Client).ServeHTTP)

			r.Post("/project", projectcreate.New(logger, s.Project).ServeHTTP)
			r.Get("/project", projectlist.New(logger, s.Project, false).ServeHTTP)
			r.Get("/project/archived", projectlist.New(logger, s.Project, true).ServeHTTP)
			r.Get("/project/client/{client}", projectbyclient.New(logger, s.Project, false).ServeHTTP)
			r.Get("/project/archivedclient/{client}", projectbyclient.New(logger, s.Project, true).ServeHTTP)
			r.Get("/project/{id}", projectread.New(logger, s.Project).ServeHTTP)
			r.Put("/project/{id}", projectupdate.New(logger, s.Project).ServeHTTP)
			r.Put("/project/archive/{id}", projectarchive.New(logger, s.Project, true).ServeHTTP)
			r.Put("/project/restore/{id}", projectarchive.New(logger, s.Project, false).ServeHTTP)
			r.Delete("/project/{id}", projectremove.New(logger, s.Project).ServeHTTP)

			r.Post("/deliverynote", notecreate.New(logger, s.Note).ServeHTTP)
			r.Get("/deliverynote", notelist.New(logger, s.Note, false).ServeHTTP)
			r.Get("/deliverynote/signed", notelist.New(logger, s.Note, true).ServeHTTP)
			r.Get("/deliverynote/{id}", noteread.New(logger, s.Note).ServeHTTP)
			r.Post("/deliverynote/sign/{id}", notesign.New(logger, s.Note, maxUpload).ServeHTTP)
			r.Get("/deliverynote/pdf/{id}", notepdfget.New(logger, s.Note).ServeHTTP)
			r.Delete("/deliverynote/{id}", noteremove.New(logger, s.Note).ServeHTTP)

			r.Post("/mail", mailsend.New(logger, s.MailPub).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
