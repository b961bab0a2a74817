package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/obsidianempire/overlay/api/pkg/jwt"
)

func main() {
	// Flags for customization
	secretKey := flag.String("secret", os.Getenv("JWT_SECRET_KEY"), "Session token signing secret")
	userID := flag.String("user", "dev-user", "Discord user ID for the token")
	username := flag.String("username", "Dev", "Username for the token")
	discriminator := flag.String("discriminator", "0000", "Discriminator for the token")
	guilds := flag.String("guilds", "", "Comma-separated guild IDs")
	roles := flag.String("roles", "", "Comma-separated role IDs, applied to every guild")
	canCreate := flag.Bool("create-events", false, "Grant the create-events capability")
	issuer := flag.String("issuer", "overlay-api.obsidianempire.gg", "Token issuer")
	expMins := flag.Int("exp", 60*24, "Token expiration in minutes (default: 1 day)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *secretKey == "" {
		fmt.Fprintln(os.Stderr, "Error: a signing secret is required (-secret flag or JWT_SECRET_KEY)")
		os.Exit(1)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey:      *secretKey,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		os.Exit(1)
	}

	guildIDs := splitList(*guilds)
	roleIDs := splitList(*roles)

	guildRoles := make(map[string][]string, len(guildIDs))
	for _, guildID := range guildIDs {
		guildRoles[guildID] = roleIDs
	}

	claims := jwt.Claims{
		Subject:         *userID,
		Username:        *username,
		Discriminator:   *discriminator,
		GuildIDs:        guildIDs,
		GuildRoles:      guildRoles,
		CanCreateEvents: *canCreate,
	}

	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token":      token,
			"token_type":        "Bearer",
			"expires_in":        *expMins * 60,
			"user_id":           *userID,
			"guild_ids":         guildIDs,
			"can_create_events": *canCreate,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Println("Dev Token Generated")
		fmt.Println("===================")
		fmt.Printf("User ID:  %s\n", *userID)
		fmt.Printf("Guilds:   %s\n", strings.Join(guildIDs, ", "))
		fmt.Printf("Roles:    %s\n", strings.Join(roleIDs, ", "))
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/auth/me\n", token[:50]+"...")
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
