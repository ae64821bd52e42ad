package main

import (
	"log"
	"os"
	"strings"
	"unitBookBot/models"
	"unitBookBot/scheduler"
	"unitBookBot/services"
	"unitBookBot/services/extService"
	"unitBookBot/services/interactionService"
	"unitBookBot/services/ledgerService"
	"unitBookBot/services/messageService"
	"unitBookBot/services/settlementService"
	"unitBookBot/services/wagerService"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatalf("DATABASE_URL not set in environment variables")
	}

	u, err := dburl.Parse(connString)
	if err != nil {
		log.Fatalf("Error parsing DATABASE_URL: %v", err)
	}
	dsn := u.DSN
	if !strings.Contains(dsn, "parseTime") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "charset=utf8mb4&parseTime=True&loc=Local"
	}

	db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Guild{},
		&models.Wager{},
		&models.Leg{},
		&models.SettlementRecord{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if err = services.RunRecordPeriodBackfill(db); err != nil {
		log.Printf("Error running record period backfill: %v", err)
	}
}

func main() {
	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatalf("DISCORD_BOT_TOKEN not set in environment variables")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	ledger := ledgerService.NewGormLedger(db)
	presenter := &messageService.DiscordPresenter{Session: dg, DB: db}
	interactionService.Controller = wagerService.NewController(ledger, presenter, extService.NewESPNSource(), wagerService.Config{})
	services.Engine = settlementService.NewEngine(ledger)

	dg.AddHandler(interactionCreate)
	dg.AddHandler(reactionAdd)
	dg.AddHandler(reactionRemove)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		err := s.UpdateGameStatus(0, "Tracking Units!")
		if err != nil {
			return
		}
	})

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMessageReactions

	err = dg.Open()
	if err != nil {
		log.Fatalf("Error opening Discord session: %v", err)
	}
	defer func(dg *discordgo.Session) {
		err := dg.Close()
		if err != nil {

		}
	}(dg)

	err = services.RegisterCommands(dg)
	if err != nil {
		log.Fatalf("Error registering commands: %v", err)
	}

	scheduler.SetupCron(db)

	log.Println("Bot is running. Press CTRL+C to exit.")
	select {}
}

func interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		services.HandleSlashCommand(s, i, db)
	case discordgo.InteractionMessageComponent:
		services.HandleComponentInteraction(s, i, db)
	case discordgo.InteractionModalSubmit:
		services.HandleModalSubmit(s, i, db)
	}
}

func reactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	services.HandleReactionAdd(s, r)
}

func reactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	services.HandleReactionRemove(s, r)
}
