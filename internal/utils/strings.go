package utils

// MaskSecret shows at most the first four characters of secret, and never
// more than half of it, followed by "****".
func MaskSecret(secret string) string {
	runes := []rune(secret)
	visible := min(4, len(runes)/2)
	return string(runes[:visible]) + "****"
}
