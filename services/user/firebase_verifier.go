package user

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseVerifier adapts the Firebase Admin auth client to IdentityVerifier.
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*VerifiedIdentity, error) {
	token, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid firebase id token: %w", err)
	}

	identity := &VerifiedIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}
