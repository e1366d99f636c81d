// Package authtoken signs and verifies the HS256 bearer tokens used to
// authenticate API callers.
//
// Tokens carry the caller's identity plus the tenant they were issued for,
// which the tenant middleware uses as a derivation source:
//
//	svc, err := authtoken.New(authtoken.Config{SigningKey: key})
//	if err != nil {
//		return err
//	}
//
//	token, err := svc.Generate(authtoken.Claims{
//		UserID:   userID,
//		Email:    "owner@goldsmith.example",
//		TenantID: uuid.NullUUID{UUID: tenantID, Valid: true},
//	})
//
//	claims, err := svc.Parse(token)
package authtoken
