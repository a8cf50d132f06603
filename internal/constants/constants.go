package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUserRole is the gin context key holding the authenticated user's role.
	ContextKeyUserRole = "user_role"

	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 6

	// HouseCodeLength is the length of generated house join codes.
	HouseCodeLength = 6
	// MaxHouseCodeAttempts bounds collision retries during code generation.
	MaxHouseCodeAttempts = 10

	// MaxReceiptSize is the upload limit for receipt images (5MB).
	MaxReceiptSize = 5 << 20
)
