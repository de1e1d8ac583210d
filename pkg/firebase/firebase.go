package firebase

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// InitFirebase initializes the Firebase application and authentication client
func InitFirebase(ctx context.Context, credentialsPath string, log *logrus.Entry) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	log.Info("Firebase app and auth client initialized")
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}

// Identity is what the service keeps from a verified ID token.
type Identity struct {
	UID      string
	Email    string
	Name     string
	Picture  string
	Username string
}

var usernameInvalid = regexp.MustCompile(`[^a-z0-9_.]+`)

// IdentityFromToken extracts the caller identity from a verified token.
// The username falls back from the email local part to the UID.
func IdentityFromToken(token *auth.Token) Identity {
	id := Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		id.Picture = picture
	}

	local := id.Email
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	local = usernameInvalid.ReplaceAllString(strings.ToLower(local), "")
	if local == "" {
		local = strings.ToLower(token.UID)
	}
	id.Username = local
	return id
}
