package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/valtteripyyhtia/book-library/pkg/service/token"
)

type Auth struct {
	secret    string
	expiry    time.Duration
	testLogin string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "Signing secret for bearer tokens",
			Category:    "Auth",
			Sources:     cli.EnvVars("BOOKLIB_TOKEN_SECRET"),
			Destination: &x.secret,
		},
		&cli.DurationFlag{
			Name:        "token-expiry",
			Usage:       "Lifetime of issued tokens",
			Category:    "Auth",
			Sources:     cli.EnvVars("BOOKLIB_TOKEN_EXPIRY"),
			Value:       token.DefaultExpiry,
			Destination: &x.expiry,
		},
		&cli.StringFlag{
			Name:        "test-login",
			Usage:       "Expose POST /login that issues tokens without credentials. Only the exact literal \"true\" enables it; any other value (or unset) disables it",
			Category:    "Auth",
			Sources:     cli.EnvVars("BOOKLIB_TEST_LOGIN"),
			Destination: &x.testLogin,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("secret.len", len(x.secret)),
		slog.Duration("expiry", x.expiry),
		slog.String("test-login", x.testLogin),
	)
}

// TestLoginEnabled resolves the test-login toggle once at startup.
// Default-deny: anything other than the exact literal "true" is disabled.
func (x *Auth) TestLoginEnabled() bool {
	return x.testLogin == "true"
}

func (x *Auth) Configure() (*token.Service, error) {
	if x.secret == "" {
		return nil, goerr.New("token secret is required (--token-secret or BOOKLIB_TOKEN_SECRET)")
	}

	return token.New([]byte(x.secret), token.WithExpiry(x.expiry)), nil
}
