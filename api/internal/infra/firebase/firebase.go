package firebase

import (
	"context"

	"sharkpay/api/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Init returns the auth client of the firebase project. Without a credentials
// file the application default credentials are used.
func Init(ctx context.Context, config *config.Config) (*auth.Client, error) {
	var opts []option.ClientOption
	if config.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.Firebase.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if config.Firebase.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: config.Firebase.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, err
	}

	return app.Auth(ctx)
}
