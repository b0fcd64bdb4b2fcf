package domain

const (
	// FINGERPRINT_DELIMITER joins fingerprint components; it never survives normalization
	FINGERPRINT_DELIMITER = "|"

	// PLACEHOLDER_TLD is appended to company-derived domain tokens
	PLACEHOLDER_TLD = ".com"

	// Bounds on the length of a company-derived domain token
	MIN_DOMAIN_TOKEN_LENGTH = 3
	MAX_DOMAIN_TOKEN_LENGTH = 49

	// SYSTEM_USER_ID marks entries produced outside a user's request (e.g. refresh jobs)
	SYSTEM_USER_ID = "system"
)
