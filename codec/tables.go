package codec

// alphabet is the forward table: 6-bit value to RFC 4648 standard Base64
// character. No URL-safe variant.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// padChar fills unused character slots in the final group.
const padChar = '='

// decodeTable is the reverse table: character code to 6-bit value. Every
// byte outside the alphabet, '=' and whitespace included, maps to 0, the
// same value as 'A'. Lenient by contract: decoding never rejects a byte.
var decodeTable [256]byte

func init() {
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = byte(i)
	}
}
