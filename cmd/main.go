// Gateway is a backend for the ticketing web app; it fronts the Auth API and
// owns the browser facing login, passkey and session handling
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ebsys/gateway/bridge"
	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/connect"
	"github.com/ebsys/gateway/controllers"
	"github.com/ebsys/gateway/enums"
	"github.com/ebsys/gateway/logger"
	"github.com/ebsys/gateway/middleware"
	"github.com/ebsys/gateway/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

var (
	env    config.Env
	conn   connect.Connector
	google bridge.Bridge
)

func init() {
	env.Load()

	conn.InitRatelimiter(&env)
	conn.InitRedis(&env)

	var err error
	google, err = bridge.NewGoogle(
		context.Background(),
		env.GoogleClientID,
		env.GoogleClientSecret,
		env.GoogleRedirectURL,
	)
	if err != nil {
		logger.Errorf(err)
	}
}

func main() {
	api := &services.AuthAPI{Env: &env}

	auth := controllers.Auth{Env: &env, Conn: &conn, API: api, Bridge: google}
	passkey := controllers.MFA{Env: &env, Conn: &conn, API: api}
	devices := controllers.Devices{Env: &env, Conn: &conn, API: api}
	guard := middleware.Auth{Env: &env, Conn: &conn}

	app := fiber.New()
	if env.Mode() == config.Dev {
		app.Use(fiberLogger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowOrigins:     env.FrontendHostname,
		AllowCredentials: true,
		AllowMethods:     "*",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
		LimiterMiddleware:      limiter.SlidingWindow{},
		Storage:                conn.Ratelimter,
	}))

	app.Route("/auth", func(router fiber.Router) {
		router.Post("/login", auth.Login)
		router.Post("/register", auth.Register)
		router.Post("/logout", auth.Logout)
		router.Get("/google", auth.FederatedRedirect)
		router.Get("/google/callback", auth.FederatedCallback)

		router.Post("/mfa/start", passkey.Start)
		router.Post("/mfa/finish", passkey.Finish)
		router.Post("/mfa/request_code", passkey.RequestCode)
		router.Post("/mfa/verify_code", passkey.VerifyCode)
	})

	app.Route("/accounts", func(router fiber.Router) {
		router.Use(guard.Check)

		router.Get("/devices", devices.List)
		router.Put("/devices/revoke", devices.Revoke)
		router.Post("/passkey/register/start", devices.RegisterStart)
		router.Post("/passkey/register/finish", devices.RegisterFinish)
	})

	app.Get("/"+enums.SysHealth, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Route("/monitor", func(router fiber.Router) {
		router.Get("/metrics", monitor.New(monitor.Config{
			Title: "Monitor Gateway",
		}))
	})

	logger.Log(fmt.Sprintf("gateway listening on :%s", env.Port))
	logger.Errorf(app.Listen(fmt.Sprintf(":%s", env.Port)))
}
