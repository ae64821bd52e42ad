package services

import (
	"strings"
	"unitBookBot/services/interactionService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.MessageComponentData().CustomID

	if strings.HasPrefix(customID, "wizard_") {
		interactionService.HandleWizardComponent(s, i, db)
	}
}

func HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.ModalSubmitData().CustomID

	if strings.HasPrefix(customID, "wizardmodal_") {
		interactionService.HandleWizardModal(s, i, db)
	}
}
