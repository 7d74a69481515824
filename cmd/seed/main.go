package main

import (
	"context"
	"log"
	"time"

	"promoservice/internal/app"
	"promoservice/internal/config"
	"promoservice/internal/database"
	"promoservice/internal/domain/advertisement"
	"promoservice/internal/domain/promotion"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg.DatabaseURL, cfg.MongoDB)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer store.Close(ctx)

	log.Println("Ensuring schema...")
	if err := app.EnsureSchema(ctx, store); err != nil {
		log.Fatal("schema failed:", err)
	}

	now := time.Now().UTC()
	ads := advertisement.NewService(advertisement.NewRepository(store, time.Now), nil, nil, time.Now)
	promotions := promotion.NewService(promotion.NewRepository(store), time.Now)

	// ================== ADVERTISEMENTS ==================
	log.Println("Creating advertisements...")
	adRequests := []advertisement.CreateAdvertisementRequest{
		{
			Title:      "Summer sale",
			ImageURL:   "https://cdn.example.com/ads/summer.png",
			StartTime:  timePtr(now.Add(-24 * time.Hour)),
			EndTime:    timePtr(now.Add(30 * 24 * time.Hour)),
			LandingURL: strPtr("https://shop.example.com/sale"),
		},
		{
			Title:            "Kitchen picks",
			ImageURL:         "https://cdn.example.com/ads/kitchen.png",
			Description:      strPtr("Hand-picked kitchen appliances"),
			StartTime:        timePtr(now.Add(-time.Hour)),
			EndTime:          timePtr(now.Add(7 * 24 * time.Hour)),
			TargetProductIDs: []int64{1, 2, 3},
			Metadata:         map[string]any{"placement": "home_banner"},
		},
		{
			Title:     "Coming soon",
			ImageURL:  "https://cdn.example.com/ads/soon.png",
			StartTime: timePtr(now.Add(7 * 24 * time.Hour)),
			EndTime:   timePtr(now.Add(14 * 24 * time.Hour)),
			IsActive:  boolPtr(false),
		},
	}
	for i := range adRequests {
		ad, err := ads.Create(ctx, &adRequests[i])
		if err != nil {
			log.Fatal("create advertisement:", err)
		}
		log.Printf("Advertisement %q created: %s", ad.Title, ad.ID)
	}

	// ================== PROMOTIONS ==================
	log.Println("Creating promotions...")
	for i, img := range []string{"black-friday.png", "new-year.png"} {
		start := now.Add(time.Duration(i) * 30 * 24 * time.Hour)
		p, err := promotions.Create(ctx, &promotion.CreatePromotionRequest{
			ImageURL:  "https://cdn.example.com/promotions/" + img,
			StartTime: int64Ptr(start.UnixMilli()),
			EndTime:   int64Ptr(start.Add(10 * 24 * time.Hour).UnixMilli()),
		})
		if err != nil {
			log.Fatal("create promotion:", err)
		}
		log.Printf("Promotion created: %s", p.ID)
	}

	log.Println("Seed complete")
}

func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func int64Ptr(v int64) *int64        { return &v }
func timePtr(t time.Time) *time.Time { return &t }
