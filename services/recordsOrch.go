package services

import (
	"fmt"
	"strings"
	"time"
	"unitBookBot/models"
	"unitBookBot/services/common"
	"unitBookBot/services/oddsService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// MyWagers lists the caller's unsettled wagers.
func MyWagers(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	userID := i.Member.User.ID

	var wagers []models.Wager
	err := db.Preload("Legs").
		Where("user_id = ? AND guild_id = ? AND status IN ?", userID, i.GuildID,
			[]string{models.StatusConfirmed, models.StatusPosted}).
		Order("id").
		Find(&wagers).Error
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	if len(wagers) == 0 {
		common.SendEphemeral(s, i, "You have no open wagers.")
		return
	}

	var b strings.Builder
	b.WriteString("**Your open wagers:**\n")
	for _, w := range wagers {
		var legText []string
		for _, leg := range w.Legs {
			legText = append(legText, fmt.Sprintf("%s %s (%s)", leg.Participant, leg.Market, oddsService.FormatAmerican(leg.AmericanOdds)))
		}
		state := "posted"
		if w.Status == models.StatusConfirmed {
			state = "confirmed, not yet posted"
		}
		b.WriteString(fmt.Sprintf("* **%.1f units** — %s _(%s)_\n", w.Stake, strings.Join(legText, " + "), state))
	}

	common.SendEphemeral(s, i, b.String())
}

// periodTotals is one aggregation row over settlement records.
type periodTotals struct {
	Wins   int
	Losses int
	Pushes int
	Net    float64
}

func sumRecords(db *gorm.DB, guildID, userID string, year int, month int) (periodTotals, error) {
	query := db.Model(&models.SettlementRecord{}).
		Where("guild_id = ? AND user_id = ? AND year = ?", guildID, userID, year)
	if month > 0 {
		query = query.Where("month = ?", month)
	}

	var records []models.SettlementRecord
	if err := query.Find(&records).Error; err != nil {
		return periodTotals{}, err
	}

	var totals periodTotals
	for _, rec := range records {
		switch {
		case rec.ResultValue > 0:
			totals.Wins++
		case rec.ResultValue < 0:
			totals.Losses++
		default:
			totals.Pushes++
		}
		totals.Net += rec.ResultValue
	}
	return totals, nil
}

// UnitRecord shows the caller's settled unit totals for the current
// month and year, straight off the settlement records.
func UnitRecord(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	userID := i.Member.User.ID
	now := time.Now().UTC()

	monthly, err := sumRecords(db, i.GuildID, userID, now.Year(), int(now.Month()))
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	yearly, err := sumRecords(db, i.GuildID, userID, now.Year(), 0)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	username := common.GetUsernameWithDB(db, s, i.GuildID, userID)
	content := fmt.Sprintf(
		"**%s's unit record**\n%s: %d-%d-%d, **%+.2f units**\n%d: %d-%d-%d, **%+.2f units**",
		username,
		now.Month(), monthly.Wins, monthly.Losses, monthly.Pushes, monthly.Net,
		now.Year(), yearly.Wins, yearly.Losses, yearly.Pushes, yearly.Net,
	)
	common.SendEphemeral(s, i, content)
}
