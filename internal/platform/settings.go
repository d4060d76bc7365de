// Package platform holds the operator-level settings shared by every club:
// subscription pricing and support contact details. Settings are loaded once
// at startup from the platform_settings collection and passed by injection;
// defaults apply for any key the collection does not override.
package platform

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Pricing struct {
	SetupFee   int64 `firestore:"setupFee" json:"setupFee"`
	MonthlyFee int64 `firestore:"monthlyFee" json:"monthlyFee"`
	YearlyFee  int64 `firestore:"yearlyFee" json:"yearlyFee"`
	TrialDays  int   `firestore:"trialDays" json:"trialDays"`
}

type Contact struct {
	WhatsApp string `firestore:"whatsapp" json:"whatsapp"`
	Email    string `firestore:"email" json:"email"`
}

type Settings struct {
	Pricing Pricing `json:"pricing"`
	Contact Contact `json:"contact"`
}

func Defaults() Settings {
	return Settings{
		Pricing: Pricing{
			SetupFee:   999,
			MonthlyFee: 499,
			YearlyFee:  4999,
			TrialDays:  15,
		},
		Contact: Contact{
			WhatsApp: "919876543210",
			Email:    "admin@cricmates.in",
		},
	}
}

// Load reads platform_settings rows keyed "pricing" and "contact". A fetch
// failure or missing key leaves the default for that key in place.
func Load(ctx context.Context, fs *firestore.Client) Settings {
	s := Defaults()

	iter := fs.Collection("platform_settings").Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("platform settings fetch failed, using defaults: %v", err)
			return s
		}

		switch doc.Ref.ID {
		case "pricing":
			var p Pricing
			if err := doc.DataTo(&p); err == nil {
				s.Pricing = p
			}
		case "contact":
			var c Contact
			if err := doc.DataTo(&c); err == nil {
				s.Contact = c
			}
		}
	}
	return s
}
