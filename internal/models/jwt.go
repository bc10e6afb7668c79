package models

// JWTClaims represents the structure of the JWT token claims
type JWTClaims struct {
	JTI          string      `json:"jti"`
	Exp          int64       `json:"exp"`
	IAT          int64       `json:"iat"`
	ISS          string      `json:"iss"`
	AUD          interface{} `json:"aud"`
	SUB          string      `json:"sub"`
	TYP          string      `json:"typ"`
	AZP          string      `json:"azp"`
	SessionState string      `json:"session_state"`
	RealmAccess  struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	Scope             string `json:"scope"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}

// GetAudiences normalizes the aud claim, which may be a string or a list
func (c *JWTClaims) GetAudiences() []string {
	switch aud := c.AUD.(type) {
	case string:
		return []string{aud}
	case []string:
		return aud
	case []interface{}:
		audiences := make([]string, 0, len(aud))
		for _, a := range aud {
			if s, ok := a.(string); ok {
				audiences = append(audiences, s)
			}
		}
		return audiences
	default:
		return nil
	}
}

// HasRole reports whether the realm roles contain role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.RealmAccess.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserID returns the identifier used as contact and config owner
func (c *JWTClaims) UserID() string {
	if c.SUB != "" {
		return c.SUB
	}
	return c.PreferredUsername
}
