package services

import (
	"fmt"
	"unitBookBot/services/guildService"
	"unitBookBot/services/interactionService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	switch i.ApplicationCommandData().Name {
	case "place-wager":
		interactionService.StartWizard(s, i, db, false)
	case "place-parlay":
		interactionService.StartWizard(s, i, db, true)
	case "my-wagers":
		MyWagers(s, i, db)
	case "unit-record":
		UnitRecord(s, i, db)
	case "set-wager-channel":
		guildService.SetWagerChannel(s, i, db)
	case "set-unit-range":
		guildService.SetUnitRange(s, i, db)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "place-wager",
			Description: "Walk through placing a single wager",
		},
		{
			Name:        "place-parlay",
			Description: "Walk through placing a multi-leg parlay",
		},
		{
			Name:        "my-wagers",
			Description: "Show your open wagers",
		},
		{
			Name:        "unit-record",
			Description: "Show your unit record for this month and year",
		},
		{
			Name:        "set-wager-channel",
			Description: "🛡 Sets the current channel as a channel wager slips post to - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "slot",
					Description: "Which of the two wager channel slots to set (default 1)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "set-unit-range",
			Description: "🛡 Sets the minimum and maximum units per wager - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "min",
					Description: "Smallest allowed stake (default 0.5)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "max",
					Description: "Largest allowed stake (default 3.0)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
	}

	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		rcmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%v' command: %v", cmd.Name, err)
		}
		registeredCommands[i] = rcmd
	}

	return nil
}
