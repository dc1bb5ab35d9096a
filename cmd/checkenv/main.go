// Command checkenv verifies that the configured MongoDB, Cloudinary and Stripe
// credentials work before the API is started against them.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/xyz-asif/gohotels/internal/config"
	"github.com/xyz-asif/gohotels/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println("Testing MongoDB connection...")
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("MongoDB connection failed: ", err)
	}
	defer db.Disconnect(context.Background())
	fmt.Printf("✅ MongoDB connected (database %q)\n", cfg.MongoDB)

	fmt.Println("\nTesting Cloudinary credentials...")
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		fmt.Println("⚠️  Cloudinary credentials missing, image uploads will fail")
	} else {
		cldURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryCloudName)
		cld, err := cloudinary.NewFromURL(cldURL)
		if err != nil {
			log.Fatal("Cloudinary initialization failed: ", err)
		}
		if _, err := cld.Admin.Ping(ctx); err != nil {
			log.Fatal("Cloudinary ping failed: ", err)
		}
		fmt.Printf("✅ Cloudinary reachable (cloud %s, folder %s)\n", cfg.CloudinaryCloudName, cfg.CloudinaryUploadFolder)
	}

	fmt.Println("\nTesting Stripe key...")
	if cfg.StripeAPIKey == "" {
		fmt.Println("⚠️  STRIPE_API_KEY missing, payment intents will fail")
	} else {
		sc := &client.API{}
		sc.Init(cfg.StripeAPIKey, nil)
		params := &stripe.BalanceParams{}
		params.Context = ctx
		if _, err := sc.Balance.Get(params); err != nil {
			log.Fatal("Stripe request failed: ", err)
		}
		fmt.Printf("✅ Stripe key accepted (currency %s, verify payments %t)\n", cfg.PaymentCurrency, cfg.VerifyPayments)
	}

	fmt.Println("\n🎉 All systems ready!")
}
