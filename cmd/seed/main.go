package main

import (
	"flag"
	"fmt"
	"time"

	"insta-scheduler/internal/model"
	"insta-scheduler/pkg/config"
	"insta-scheduler/pkg/database"
	"insta-scheduler/pkg/logger"
)

// Seeds a demo user with one linked account and a post due one minute from
// now, for exercising the publish loop against a Graph API stub.
func main() {
	var igUserID string
	flag.StringVar(&igUserID, "ig-user-id", "17841400000000000", "Instagram business account id for the demo account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	user := &model.UserModel{
		FBUserID:  "demo-fb-user",
		Name:      "Demo User",
		UserToken: "demo-user-token",
	}
	if err := db.Where("fb_user_id = ?", user.FBUserID).FirstOrCreate(user).Error; err != nil {
		panic(err)
	}

	account := &model.IGAccountModel{
		UserID:          user.ID,
		PageID:          "demo-page",
		PageName:        "Demo Page",
		PageAccessToken: "demo-page-token",
		IGUserID:        igUserID,
		IGUsername:      "demo.page",
	}
	if err := db.Where("user_id = ? AND page_id = ?", user.ID, account.PageID).FirstOrCreate(account).Error; err != nil {
		panic(err)
	}

	post := &model.PostModel{
		UserID:        user.ID,
		IGAccountID:   account.ID,
		Caption:       "Scheduled from the seed command",
		MediaURL:      "https://picsum.photos/1080",
		ScheduledTime: time.Now().UTC().Add(time.Minute),
		Status:        "pending",
	}
	if err := db.Create(post).Error; err != nil {
		panic(err)
	}

	log.Info("Seeded user %d, account %d, post %d (due %s)", user.ID, account.ID, post.ID, post.ScheduledTime.Format(time.RFC3339))
}
