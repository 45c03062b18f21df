package notify

import (
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var bot *tgbotapi.BotAPI

// Init connects the notification bot when BOT_TOKEN is set; otherwise
// notifications are silently skipped.
func Init() {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Println("🟡 BOT_TOKEN not set, winner notifications disabled")
		return
	}

	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("⚠️  Failed to connect notification bot: %v", err)
		return
	}
	bot = b
	log.Printf("✅ Notification bot connected as @%s", b.Self.UserName)
}

// ContestWin messages the winner after a draw commits. Delivery is best
// effort; a failed send never affects the settled draw.
func ContestWin(telegramID int64, itemName string) {
	if bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(telegramID, fmt.Sprintf("🎉 Поздравляем! Вы выиграли %s в розыгрыше!", itemName))
	if _, err := bot.Send(msg); err != nil {
		log.Printf("⚠️  Failed to notify contest winner %d: %v", telegramID, err)
	}
}
