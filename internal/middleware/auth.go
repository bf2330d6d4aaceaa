package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"tubebrief/internal/db"
)

type contextKey string

// UserContextKey is the key for the authenticated user in the request
// context.
const UserContextKey = contextKey("user")

// Auth validates Telegram Mini App init data against the bot token and
// resolves the caller to a registered user. Unlike the bot's password
// handshake it never registers anyone: unknown or deactivated users get 403.
type Auth struct {
	store    *db.Store
	botToken string
}

func NewAuth(store *db.Store, botToken string) *Auth {
	return &Auth{store: store, botToken: botToken}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "tma" {
			http.Error(w, "Authorization header format must be 'tma <initData>'", http.StatusUnauthorized)
			return
		}

		raw := parts[1]
		if err := initdata.Validate(raw, a.botToken, 0); err != nil {
			log.Printf("Invalid init data: %v", err)
			http.Error(w, "Invalid init data", http.StatusUnauthorized)
			return
		}

		data, err := initdata.Parse(raw)
		if err != nil {
			log.Printf("Error parsing init data: %v", err)
			http.Error(w, "Error parsing init data", http.StatusBadRequest)
			return
		}

		user, err := a.store.GetUser(strconv.FormatInt(data.User.ID, 10))
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if user == nil || user.Active != 1 {
			http.Error(w, "User is not registered", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
