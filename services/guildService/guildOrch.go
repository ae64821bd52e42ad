package guildService

import (
	"fmt"
	"strconv"
	"unitBookBot/models"
	"unitBookBot/services/common"
	"unitBookBot/services/wagerService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func GetGuildInfo(s *discordgo.Session, db *gorm.DB, guildID string, channelId string) (*models.Guild, error) {
	var guild models.Guild
	guildResult := db.Where("guild_id = ?", guildID).First(&guild)

	if guildResult.RowsAffected == 0 {
		guildInfo, err := s.Guild(guildID)
		if err != nil {
			return nil, err
		}
		newGuild := &models.Guild{GuildID: guildID, WagerChannel1: channelId, GuildName: guildInfo.Name, MinUnits: 0.5, MaxUnits: 3.0}
		newGuildResult := db.Create(newGuild)
		if newGuildResult.Error != nil {
			return nil, newGuildResult.Error
		} else {
			guild = *newGuild
		}
	} else {
		checkGuild, err := s.Guild(guildID)
		if err != nil {
			common.SendError(s, nil, err, db)
		} else {
			if guild.GuildName != checkGuild.Name {
				guild.GuildName = checkGuild.Name
				db.Save(&guild)
			}
		}
	}

	return &guild, nil
}

// Destinations builds the wizard's channel options from the guild's
// configured wager channels.
func Destinations(s *discordgo.Session, guild *models.Guild) []wagerService.Option {
	var opts []wagerService.Option
	for _, channelID := range []string{guild.WagerChannel1, guild.WagerChannel2} {
		if channelID == "" {
			continue
		}
		label := "#" + channelID
		if ch, err := s.State.Channel(channelID); err == nil && ch != nil {
			label = "#" + ch.Name
		} else if ch, err := s.Channel(channelID); err == nil && ch != nil {
			label = "#" + ch.Name
		}
		opts = append(opts, wagerService.Option{Value: channelID, Label: label})
	}
	return opts
}

func SetWagerChannel(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.SendEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	guild, err := GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	slot := int64(1)
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		slot = options[0].IntValue()
	}
	if slot == 2 {
		guild.WagerChannel2 = i.ChannelID
	} else {
		guild.WagerChannel1 = i.ChannelID
	}
	db.Save(guild)

	common.SendEphemeral(s, i, fmt.Sprintf("Wager channel %d set to this channel", slot))
}

func SetUnitRange(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.SendEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) < 2 {
		common.SendEphemeral(s, i, "Both a minimum and a maximum are required.")
		return
	}
	min, err1 := strconv.ParseFloat(options[0].StringValue(), 64)
	max, err2 := strconv.ParseFloat(options[1].StringValue(), 64)
	if err1 != nil || err2 != nil || min <= 0 || max < min {
		common.SendEphemeral(s, i, "Enter a valid unit range, e.g. 0.5 and 3.0.")
		return
	}

	guild, err := GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	guild.MinUnits = min
	guild.MaxUnits = max
	db.Save(guild)

	common.SendEphemeral(s, i, fmt.Sprintf("Unit range set to %.1f - %.1f", min, max))
}
