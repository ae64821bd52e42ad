package common

import (
	"fmt"
	"log"
	"net/http"
	"unitBookBot/models"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Use member data from the interaction - no privileged intent needed
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Printf("Error fetching roles from API: %v", err)
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Printf("Role %s not found in guild %s", roleID, i.GuildID)
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	fmt.Println(err)

	guildId := ""
	if i != nil {
		guildId = i.GuildID
		localErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("An error occured: %v", err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if localErr != nil {
			log.Printf("Error sending interaction: %v", localErr)
		}
	}
	errLog := models.ErrorLog{
		GuildID: guildId,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// SendEphemeral answers an interaction with a user-only message. Used
// for expected rejections that should not hit the error log.
func SendEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending interaction: %v", err)
	}
}

// GetUsernameFromUser extracts username from a discordgo.User object
func GetUsernameFromUser(user *discordgo.User) string {
	if user == nil {
		return "Unknown User"
	}
	username := user.GlobalName
	if username == "" {
		username = user.Username
	}
	if username == "" {
		return "Unknown User"
	}
	return username
}

// UpdateUserUsername updates the username field in the database if it's different
func UpdateUserUsername(db *gorm.DB, user *models.User, username string) {
	if user.Username == nil || *user.Username != username {
		user.Username = &username
		db.Save(user)
	}
}

// GetUsernameWithDB gets username from database first, then falls back to state cache
func GetUsernameWithDB(db *gorm.DB, s *discordgo.Session, guildId string, userId string) string {
	var user models.User
	if err := db.Where("discord_id = ? AND guild_id = ?", userId, guildId).First(&user).Error; err == nil {
		if user.Username != nil && *user.Username != "" {
			return *user.Username
		}
	}

	// Fallback to state cache (limited without members intent)
	if guild, err := s.State.Guild(guildId); err == nil && guild != nil {
		for _, member := range guild.Members {
			if member.User != nil && member.User.ID == userId {
				return GetUsernameFromUser(member.User)
			}
		}
	}

	return "Unknown User"
}

func ESPNWrapper(requestUrl string) (*http.Response, error) {
	client := &http.Client{}
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("espn returned status %d", resp.StatusCode)
	}
	return resp, nil
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}
