// Package jwt provides session token utilities for the Overlay API.
//
// Tokens are HS256 JWTs signed with a shared secret. The claims carry the
// Discord identity plus the authorized guild and role sets that the
// authorization middleware checks on every request.
//
// # Token Generation
//
// Sign tokens after a successful Discord login:
//
//	service, err := jwt.NewService(jwt.Config{
//	    SecretKey:      "secret-key",
//	    Issuer:         "overlay-api",
//	    ExpirationMins: 720,
//	})
//
//	token, err := service.Sign(jwt.Claims{Subject: discordUserID})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Always jwt.ErrInvalidToken, regardless of the failing check
//	}
//	userID := claims.Subject
package jwt
