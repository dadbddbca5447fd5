package routes

import (
	"seamless/config"
	"seamless/controllers/callback/slots/goldapi"
	"seamless/controllers/callback/slots/pragmatic"
	"seamless/controllers/callback/sportsbook/sbo"
	"seamless/controllers/operator"
	"seamless/engine"
	"seamless/middlewares"
	"seamless/resolver"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, e *engine.Engine, r *resolver.Resolver, cfg *config.Config) {
	userroutes := app.Group("/user", middlewares.OperatorAuth(cfg.Providers))
	userroutes.Post("/register", operator.RegisterPlayer(r))
	userroutes.Post("/balance", operator.PlayerBalance(e))
	userroutes.Post("/session", operator.CreateSession(r))

	//gold_api
	goldroutes := app.Group("/seamless/slot/gold_api", middlewares.GoldAPIAuth(cfg.Providers))
	goldroutes.Post("/user_balance", goldapi.UserBalanceHandler(e))
	goldroutes.Post("/game_callback", goldapi.GameCallbackHandler(e))

	//sbo
	sboroutes := app.Group("/seamless/sportsbook/sbo", middlewares.SboAuth(cfg.Providers))
	sboroutes.Post("/GetBalance", sbo.GetBalanceHandler(e))
	sboroutes.Post("/GetBetStatus", sbo.GetBetStatusHandler(e))
	sboroutes.Post("/Deduct", sbo.DeductHandler(e))
	sboroutes.Post("/Settle", sbo.SettleHandler(e))
	sboroutes.Post("/Cancel", sbo.CancelHandler(e))

	//pragmatic
	prroutes := app.Group("/seamless/provider/pragmatic", middlewares.PragmaticAuth(cfg.Providers))
	prroutes.Post("/authenticate", pragmatic.AuthenticateHandler(e))
	prroutes.Post("/balance", pragmatic.BalanceHandler(e))
	prroutes.Post("/bet", pragmatic.BetHandler(e))
	prroutes.Post("/result", pragmatic.ResultHandler(e))
	prroutes.Post("/refund", pragmatic.RefundHandler(e))
	prroutes.Post("/endround", pragmatic.EndRoundHandler(e))
}
