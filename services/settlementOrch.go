package services

import (
	"log"
	"unitBookBot/services/settlementService"

	"github.com/bwmarrin/discordgo"
)

// Engine is wired at startup from main.
var Engine *settlementService.Engine

// signalForEmoji maps the reaction families on a slip onto outcome
// signals. Anything else on a slip is just a reaction.
func signalForEmoji(name string) (settlementService.SignalKind, bool) {
	switch name {
	case "✅", "☑️", "✔️":
		return settlementService.SignalWon, true
	case "❌", "❎", "✖️":
		return settlementService.SignalLost, true
	case "🅿️", "🤷":
		return settlementService.SignalPush, true
	case "🚫", "🗑️":
		return settlementService.SignalVoid, true
	}
	return 0, false
}

func HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	kind, ok := signalForEmoji(r.Emoji.Name)
	if !ok {
		return
	}

	if err := Engine.SignalAdded(r.MessageID, r.UserID, kind); err != nil {
		log.Printf("Error settling %s on message %s: %v", kind, r.MessageID, err)
	}
}

func HandleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.UserID == s.State.User.ID {
		return
	}
	kind, ok := signalForEmoji(r.Emoji.Name)
	if !ok {
		return
	}

	if err := Engine.SignalRemoved(r.MessageID, r.UserID, kind); err != nil {
		log.Printf("Error reversing %s on message %s: %v", kind, r.MessageID, err)
	}
}
