package scheduler

import (
	"fmt"
	"unitBookBot/models"
	"unitBookBot/scheduler/scheduler_jobs"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func SetupCron(db *gorm.DB) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 0 */1 * * *", func() {
		// Every hour: sweep wagers that were saved at review but never
		// posted and have passed the retention window.
		err := scheduler_jobs.ReapAbandonedWagers(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			GuildID: "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}
