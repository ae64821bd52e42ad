package messageService

import (
	"fmt"
	"log"
	"unitBookBot/models"
	"unitBookBot/services/common"
	"unitBookBot/services/oddsService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// Reactions seeded on every slip so settling is one click.
var outcomeReactions = []string{"✅", "❌", "🅿️", "🚫"}

// BuildSlipEmbed renders a confirmed wager as the slip embed that gets
// posted to the wager channel.
func BuildSlipEmbed(w *models.Wager, username string) *discordgo.MessageEmbed {
	title := fmt.Sprintf("🎟️ %s's Wager", username)
	if w.IsParlay() {
		title = fmt.Sprintf("🎟️ %s's %d-Leg Parlay", username, len(w.Legs))
	}

	var fields []*discordgo.MessageEmbedField
	for n, leg := range w.Legs {
		name := leg.Participant
		if leg.Opponent != "" {
			name = fmt.Sprintf("%s vs %s", leg.Participant, leg.Opponent)
		}
		if w.IsParlay() {
			name = fmt.Sprintf("Leg %d: %s", n+1, name)
		}
		value := fmt.Sprintf("%s @ %s", leg.Market, oddsService.FormatAmerican(leg.AmericanOdds))
		if leg.League != "" {
			value = fmt.Sprintf("%s • %s", leg.League, value)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: name, Value: value})
	}

	priceText := fmt.Sprintf("%.2fx", w.Price)
	if american, err := oddsService.ToAmerican(w.Price); err == nil {
		priceText = fmt.Sprintf("%s (%.2fx)", oddsService.FormatAmerican(american), w.Price)
	}
	fields = append(fields,
		&discordgo.MessageEmbedField{Name: "Units", Value: fmt.Sprintf("**%.1f**", w.Stake), Inline: true},
		&discordgo.MessageEmbedField{Name: "Price", Value: priceText, Inline: true},
	)

	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  0x5865F2,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "✅ won • ❌ lost • 🅿️ push • 🚫 void",
		},
	}
}

// DiscordPresenter posts slips into the wager channel and hands the
// message id back as the settlement reference.
type DiscordPresenter struct {
	Session *discordgo.Session
	DB      *gorm.DB
}

func (p *DiscordPresenter) PostArtifact(w *models.Wager) (string, error) {
	username := common.GetUsernameWithDB(p.DB, p.Session, w.GuildID, w.UserID)

	msg, err := p.Session.ChannelMessageSendEmbed(w.ChannelID, BuildSlipEmbed(w, username))
	if err != nil {
		return "", err
	}

	// Seeding the reactions is best effort; the slip is already up.
	for _, emoji := range outcomeReactions {
		if err := p.Session.MessageReactionAdd(w.ChannelID, msg.ID, emoji); err != nil {
			log.Printf("Error seeding reaction %s on %s: %v", emoji, msg.ID, err)
			break
		}
	}

	return msg.ID, nil
}
