package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
)

// Grants or revokes platform super-admin claims on a firebase account.
func main() {
	uid := flag.String("uid", "", "target firebase uid")
	revoke := flag.Bool("revoke", false, "remove super admin claims instead of granting them")
	flag.Parse()
	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}

	var claims map[string]interface{}
	if !*revoke {
		claims = map[string]interface{}{
			"superAdmin": true,
			"role":       "super_admin",
		}
	}

	if err := authClient.SetCustomUserClaims(ctx, *uid, claims); err != nil {
		log.Fatalf("SetCustomUserClaims: %v", err)
	}

	if *revoke {
		fmt.Println("ok: super admin claims removed for", *uid)
	} else {
		fmt.Println("ok: super admin claims set for", *uid)
	}
}
