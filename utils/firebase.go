// utils/firebase.go
package utils

import (
	"context"
	"log"

	"patitas/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseAuthClient verifies Firebase ID tokens issued to the mobile app.
var FirebaseAuthClient *auth.Client

// FirebaseInit initializes the Firebase App and Auth client. Without
// credentials the firebase sign-in endpoint stays disabled.
func FirebaseInit() {
	if config.AppConfig.FirebaseCredentialsFile == "" {
		log.Println("firebase: no credentials file configured, ID-token sign-in disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}

	FirebaseAuthClient = client
}
