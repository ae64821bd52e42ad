package interactionService

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unitBookBot/models"
	"unitBookBot/services/common"
	"unitBookBot/services/guildService"
	"unitBookBot/services/oddsService"
	"unitBookBot/services/wagerService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// Controller is wired at startup from main.
var Controller *wagerService.Controller

const (
	componentPrefix = "wizard_"
	modalPrefix     = "wizardmodal_"
)

// StartWizard opens a placement session for the invoking user and shows
// the first step as an ephemeral message.
func StartWizard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, parlay bool) {
	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	destinations := guildService.Destinations(s, guild)
	if len(destinations) == 0 {
		common.SendEphemeral(s, i, "No wager channel is configured. An admin needs to run /set-wager-channel first.")
		return
	}

	userID := i.Member.User.ID
	var user models.User
	result := db.FirstOrCreate(&user, models.User{DiscordID: userID, GuildID: i.GuildID})
	if result.Error != nil {
		common.SendError(s, i, result.Error, db)
		return
	}
	common.UpdateUserUsername(db, &user, common.GetUsernameFromUser(i.Member.User))

	handle, prompt, err := Controller.CreateSession(userID, i.GuildID, parlay, destinations, guild.MinUnits, guild.MaxUnits)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    "**" + prompt.Title + "**",
			Components: promptComponents(handle, prompt),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error starting wizard: %v", err)
	}
}

// HandleWizardComponent feeds a select-menu choice or button press back
// into the session behind the customID.
func HandleWizardComponent(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.MessageComponentData().CustomID
	rest := strings.TrimPrefix(customID, componentPrefix)

	var handle, value string
	if idx := strings.Index(rest, "_"); idx >= 0 {
		// Button: the choice value rides in the customID.
		handle, value = rest[:idx], rest[idx+1:]
	} else {
		// Select menu: the choice value is the selection.
		handle = rest
		if values := i.MessageComponentData().Values; len(values) > 0 {
			value = values[0]
		}
	}

	input := wagerService.Input{Kind: wagerService.ChoiceInput, Value: value}
	if value == "cancel" {
		input = wagerService.Input{Kind: wagerService.CancelInput}
	}

	res, err := Controller.Advance(handle, input)
	if err != nil {
		respondAdvanceError(s, i, err, db)
		return
	}
	respondResult(s, i, handle, res, true)
}

// HandleWizardModal feeds a submitted leg-detail form into the session.
func HandleWizardModal(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	handle := strings.TrimPrefix(i.ModalSubmitData().CustomID, modalPrefix)

	form := wagerService.LegForm{}
	for _, row := range i.ModalSubmitData().Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok || len(actionsRow.Components) == 0 {
			continue
		}
		field, ok := actionsRow.Components[0].(*discordgo.TextInput)
		if !ok {
			continue
		}
		switch field.CustomID {
		case "participant":
			form.Participant = field.Value
		case "opponent":
			form.Opponent = field.Value
		case "market":
			form.Market = field.Value
		case "odds":
			odds, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(field.Value), "+"))
			if err != nil {
				common.SendEphemeral(s, i, "Odds must be a whole number like -110 or +250.")
				return
			}
			form.AmericanOdds = odds
		}
	}

	res, err := Controller.Advance(handle, wagerService.Input{Kind: wagerService.FormInput, Form: &form})
	if err != nil {
		respondAdvanceError(s, i, err, db)
		return
	}
	// A modal response cannot edit the original wizard message, so the
	// next step arrives as a fresh ephemeral message.
	respondResult(s, i, handle, res, false)
}

func respondResult(s *discordgo.Session, i *discordgo.InteractionCreate, handle string, res *wagerService.Result, update bool) {
	switch res.Outcome {
	case wagerService.OutcomeConfirmed:
		respondText(s, i, "Your slip is posted. React on it to settle: ✅ won, ❌ lost, 🅿️ push, 🚫 void.", update)
	case wagerService.OutcomeCancelled:
		respondText(s, i, "Wager cancelled. Nothing was posted.", update)
	default:
		respondPrompt(s, i, handle, res.Prompt, update)
	}
}

func respondPrompt(s *discordgo.Session, i *discordgo.InteractionCreate, handle string, prompt *wagerService.Prompt, update bool) {
	if prompt.Form {
		respondLegModal(s, i, handle, prompt)
		return
	}

	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if update {
		responseType = discordgo.InteractionResponseUpdateMessage
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: &discordgo.InteractionResponseData{
			Content:    "**" + prompt.Title + "**",
			Components: promptComponents(handle, prompt),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error rendering step %v: %v", prompt.State, err)
	}
}

func respondLegModal(s *discordgo.Session, i *discordgo.InteractionCreate, handle string, prompt *wagerService.Prompt) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			Title:    prompt.Title,
			CustomID: modalPrefix + handle,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "participant",
						Label:       "Your side",
						Style:       discordgo.TextInputShort,
						Placeholder: "Leave blank to keep the selected team/player",
						Required:    false,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "opponent",
						Label:       "Opponent",
						Style:       discordgo.TextInputShort,
						Required:    false,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "market",
						Label:       "Line",
						Style:       discordgo.TextInputShort,
						Placeholder: "e.g. Spread -4.5, Over 48.5, 2+ TDs",
						Required:    true,
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "odds",
						Label:       "American odds",
						Style:       discordgo.TextInputShort,
						Placeholder: "-110",
						Required:    true,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("Error presenting leg modal: %v", err)
	}
}

// promptComponents renders a prompt as buttons when the choice set is
// small, a select menu otherwise. A cancel button always rides along.
func promptComponents(handle string, prompt *wagerService.Prompt) []discordgo.MessageComponent {
	cancelRow := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Cancel",
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("%s%s_cancel", componentPrefix, handle),
		},
	}}

	if len(prompt.Options) <= 4 {
		var buttons []discordgo.MessageComponent
		for _, opt := range prompt.Options {
			style := discordgo.PrimaryButton
			if opt.Value == wagerService.ChoiceConfirm {
				style = discordgo.SuccessButton
			}
			buttons = append(buttons, discordgo.Button{
				Label:    opt.Label,
				Style:    style,
				CustomID: fmt.Sprintf("%s%s_%s", componentPrefix, handle, opt.Value),
			})
		}
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: buttons},
			cancelRow,
		}
	}

	options := prompt.Options
	// Discord caps a select menu at 25 entries.
	if len(options) > 25 {
		options = options[:25]
	}
	menuOptions := make([]discordgo.SelectMenuOption, len(options))
	for n, opt := range options {
		menuOptions[n] = discordgo.SelectMenuOption{Label: opt.Label, Value: opt.Value}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType: discordgo.StringSelectMenu,
				CustomID: componentPrefix + handle,
				Options:  menuOptions,
			},
		}},
		cancelRow,
	}
}

func respondAdvanceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	switch {
	case errors.Is(err, wagerService.ErrBusy):
		common.SendEphemeral(s, i, "Still working on your previous step — try again in a second.")
	case errors.Is(err, wagerService.ErrSessionNotFound):
		common.SendEphemeral(s, i, "That wizard has expired. Start over with /place-wager or /place-parlay.")
	case errors.Is(err, wagerService.ErrUnexpectedInput):
		common.SendEphemeral(s, i, "That choice doesn't fit the current step.")
	case errors.Is(err, wagerService.ErrIncompleteWager):
		common.SendEphemeral(s, i, "Your wager isn't complete yet. A parlay needs at least two legs and every leg needs a side and a line.")
	case errors.Is(err, oddsService.ErrInvalidOdds):
		common.SendEphemeral(s, i, "American odds need a magnitude of at least 100 (e.g. -110 or +250).")
	case errors.Is(err, wagerService.ErrPostFailed):
		common.SendEphemeral(s, i, "Your wager is saved but the slip could not be posted. Press Confirm again to retry.")
	default:
		common.SendError(s, i, err, db)
	}
}

func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, update bool) {
	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if update {
		responseType = discordgo.InteractionResponseUpdateMessage
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending wizard response: %v", err)
	}
}
