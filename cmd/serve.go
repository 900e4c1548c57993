package cmd

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/apperror"
	"github.com/huynhdieutuong/DevCamper-API/app/controller"
	"github.com/huynhdieutuong/DevCamper-API/app/middleware"
	"github.com/huynhdieutuong/DevCamper-API/app/repository"
	"github.com/huynhdieutuong/DevCamper-API/app/service"
	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the DevCamper API.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	if err := runMigrations(cmd.Context(), db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewVerificationTokenRepository(db)
	bootcampRepo := repository.NewBootcampRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	tokens := service.NewTokenService(cfg)
	mail := service.NewMailService(service.NewSMTPMailer(cfg.SMTP), cfg.PublicURL)
	authService := service.NewAuthService(db, userRepo, tokenRepo, tokens, mail, cfg)
	bootcampService := service.NewBootcampService(bootcampRepo)
	courseService := service.NewCourseService(courseRepo, bootcampRepo)
	userService := service.NewUserService(userRepo, cfg)

	go startTokenSweeper(cmd.Context(), tokenRepo, cfg.TokenSweepInterval)

	startHTTPServer(cfg, authService, tokens, userRepo, bootcampService, courseService, userService)
}

func startHTTPServer(
	cfg *config.Config,
	authService service.AuthService,
	tokens *service.TokenService,
	userRepo *repository.UserRepository,
	bootcampService *service.BootcampService,
	courseService *service.CourseService,
	userService *service.UserService,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true
	e.HTTPErrorHandler = apperror.HTTPErrorHandler

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authController := controller.NewAuthController(authService, tokens, cfg)
	bootcampController := controller.NewBootcampController(bootcampService, courseService)
	courseController := controller.NewCourseController(courseService)
	userController := controller.NewUserController(userService)
	authMW := middleware.NewAuthMiddleware(tokens, userRepo)

	auth := e.Group("/auth")
	auth.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(10)))
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/logout", authController.Logout)
	auth.GET("/confirmation/:token", authController.ConfirmEmail)
	auth.POST("/resendconfirmation", authController.ResendConfirmation)
	auth.POST("/forgotpassword", authController.ForgotPassword)
	auth.PUT("/resetpassword/:resettoken", authController.ResetPassword)

	authProtected := auth.Group("")
	authProtected.Use(authMW.Protect)
	authProtected.GET("/me", authController.GetMe)
	authProtected.PUT("/updatedetails", authController.UpdateDetails)
	authProtected.PUT("/updatepassword", authController.UpdatePassword)
	authProtected.POST("/updateemail", authController.UpdateEmail)

	bootcamps := e.Group("/bootcamps")
	bootcamps.GET("", bootcampController.List)
	bootcamps.GET("/:id", bootcampController.Get)
	bootcamps.GET("/:id/courses", bootcampController.ListCourses)
	bootcampsProtected := bootcamps.Group("")
	bootcampsProtected.Use(authMW.Protect, authMW.Authorize(entity.RolePublisher, entity.RoleAdmin))
	bootcampsProtected.POST("", bootcampController.Create)
	bootcampsProtected.PUT("/:id", bootcampController.Update)
	bootcampsProtected.DELETE("/:id", bootcampController.Delete)
	bootcampsProtected.POST("/:id/courses", courseController.Create)

	courses := e.Group("/courses")
	courses.GET("", courseController.List)
	courses.GET("/:id", courseController.Get)
	coursesProtected := courses.Group("")
	coursesProtected.Use(authMW.Protect, authMW.Authorize(entity.RolePublisher, entity.RoleAdmin))
	coursesProtected.PUT("/:id", courseController.Update)
	coursesProtected.DELETE("/:id", courseController.Delete)

	users := e.Group("/users")
	users.Use(authMW.Protect, authMW.Authorize(entity.RoleAdmin))
	users.GET("", userController.List)
	users.GET("/:id", userController.Get)
	users.POST("", userController.Create)
	users.PUT("/:id", userController.Update)
	users.DELETE("/:id", userController.Delete)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

// startTokenSweeper periodically removes expired verification tokens so
// abandoned registrations do not accumulate.
func startTokenSweeper(ctx context.Context, repo *repository.VerificationTokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				logrus.WithError(err).Error("Failed to sweep expired verification tokens")
				continue
			}
			if n > 0 {
				logrus.WithField("deleted", n).Info("Swept expired verification tokens")
			}
		}
	}
}
