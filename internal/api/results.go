package api

// Account is the remote account record returned on a successful sign-in
// or verification.
type Account struct {
	ID       int
	Username string
	Email    string
}

// AuthResult is the decoded outcome of an auth endpoint call. OK reports
// whether the backend accepted the request; Message carries the backend's
// user-facing message and Detail the most specific failure description the
// response offered.
type AuthResult struct {
	OK         bool
	StatusCode int
	Message    string
	Detail     string
	Account    *Account
}

// responsePayload is the wire shape shared by every auth endpoint.
type responsePayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	User    *struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Available *bool `json:"available"`
}

func toAuthResult(statusCode int, payload responsePayload) AuthResult {
	result := AuthResult{
		OK:         statusCode >= 200 && statusCode < 300 && payload.Status == "success",
		StatusCode: statusCode,
		Message:    payload.Message,
		Detail:     firstNonEmpty(payload.Detail, payload.Error, payload.Message),
	}
	if payload.User != nil {
		result.Account = &Account{
			ID:       payload.User.ID,
			Username: payload.User.Username,
			Email:    payload.User.Email,
		}
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
