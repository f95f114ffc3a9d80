package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avoronin/devconnect-server/internal/api/http/handler"
	"github.com/avoronin/devconnect-server/internal/api/http/middleware"
	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// Router wires HTTP handlers and middleware into a fiber application.
type Router struct {
	authService    handler.AuthService
	userService    handler.UserService
	profileService handler.ProfileService
	postService    handler.PostService
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	profileService handler.ProfileService,
	postService handler.PostService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
		postService:    postService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the fiber application with request logging on every
// route and token authentication on the protected ones.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	app.Use(logging.Handle)

	r.registerAuthRoutes(app, authenticate)
	r.registerProfileRoutes(app, authenticate)
	r.registerPostRoutes(app, authenticate)

	return app
}

func (r *Router) registerAuthRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)

	app.Post("/api/users", authHandler.Register)
	app.Post("/api/auth", authHandler.Login)
	app.Get("/api/auth", authenticate.Handle, authHandler.Me)
	app.Put("/api/users/avatar", authenticate.Handle, userHandler.UpdateAvatar)
}

func (r *Router) registerProfileRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	profileHandler := handler.NewProfile(r.profileService, r.contextManager, r.logger)

	app.Get("/api/profile", profileHandler.GetAll)
	app.Get("/api/profile/me", authenticate.Handle, profileHandler.Me)
	app.Get("/api/profile/user/:user_id", profileHandler.GetByUserID)
	app.Post("/api/profile", authenticate.Handle, profileHandler.Upsert)
	app.Delete("/api/profile", authenticate.Handle, profileHandler.Delete)
	app.Put("/api/profile/experience", authenticate.Handle, profileHandler.AddExperience)
	app.Delete("/api/profile/experience/:exp_id", authenticate.Handle, profileHandler.RemoveExperience)
	app.Put("/api/profile/education", authenticate.Handle, profileHandler.AddEducation)
	app.Delete("/api/profile/education/:edu_id", authenticate.Handle, profileHandler.RemoveEducation)
}

func (r *Router) registerPostRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	postHandler := handler.NewPost(r.postService, r.contextManager, r.logger)

	app.Post("/api/posts", authenticate.Handle, postHandler.Create)
	app.Get("/api/posts", authenticate.Handle, postHandler.GetAll)
	app.Get("/api/posts/:id", authenticate.Handle, postHandler.GetByID)
	app.Delete("/api/posts/:id", authenticate.Handle, postHandler.Delete)
	app.Put("/api/posts/like/:id", authenticate.Handle, postHandler.Like)
	app.Put("/api/posts/unlike/:id", authenticate.Handle, postHandler.Unlike)
	app.Post("/api/posts/comment/:id", authenticate.Handle, postHandler.AddComment)
	app.Delete("/api/posts/comment/:id/:comment_id", authenticate.Handle, postHandler.RemoveComment)
}
