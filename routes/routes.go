package routes

import (
	"aurum/controllers/admin"
	"aurum/controllers/contest"
	"aurum/controllers/game"
	"aurum/controllers/user"
	"aurum/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	userroutes := api.Group("/user")
	userroutes.Post("/get-or-create", user.GetOrCreate)
	userroutes.Get("/inventory", user.Inventory)
	userroutes.Post("/inventory/sell", user.Sell)
	userroutes.Post("/inventory/sell-multiple", user.SellMultiple)

	api.Post("/case/open", game.OpenCase)
	api.Get("/case/items_full", game.CaseItemsFull)
	api.Get("/game_settings", game.Settings)

	api.Get("/contest/current", contest.Current)
	api.Post("/contest/buy-ticket", contest.BuyTicket)

	gameroutes := api.Group("/games")
	gameroutes.Post("/coinflip", game.Coinflip)
	gameroutes.Post("/rps", game.RPS)
	gameroutes.Post("/slots", game.Slots)
	gameroutes.Post("/upgrade", game.Upgrade)
	gameroutes.Post("/miner/start", game.MinerStart)
	gameroutes.Post("/miner/select", game.MinerSelect)
	gameroutes.Post("/miner/cashout", game.MinerCashout)
	gameroutes.Post("/tower/start", game.TowerStart)
	gameroutes.Post("/tower/select", game.TowerSelect)
	gameroutes.Post("/tower/cashout", game.TowerCashout)

	adminroutes := api.Group("/admin", middlewares.AdminAuth())
	adminroutes.Get("/users", admin.Users)
	adminroutes.Post("/user/balance", admin.SetBalance)
	adminroutes.Get("/items", admin.Items)
	adminroutes.Get("/case/items", admin.CaseItems)
	adminroutes.Post("/case/items", admin.SetCaseItems)
	adminroutes.Post("/game_settings", admin.SetGameSettings)
	adminroutes.Post("/contest/create", admin.CreateContest)
	adminroutes.Post("/contest/draw/:id", admin.DrawContest)
}
