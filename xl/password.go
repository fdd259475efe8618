package xl

import "fmt"

// hashLegacyPassword computes the legacy 16-bit sheet/workbook protection
// password hash used by the reference spreadsheet application (the same
// algorithm implemented by openpyxl's hash_password and PhpSpreadsheet's
// PasswordHasher; no pack library implements this XLSX-specific legacy
// arithmetic, so it's hand-rolled here on stdlib only). Returns the
// hash formatted as a 4-digit uppercase hex string, as stored in the
// `password` attribute of `<sheetProtection>`/`<workbookProtection>`.
func hashLegacyPassword(password string) string {
	if password == "" {
		return ""
	}
	bytes := []byte(password)
	hash := uint16(0)
	for i := len(bytes) - 1; i >= 0; i-- {
		hash = rotl15(hash) ^ uint16(bytes[i])
	}
	hash = rotl15(hash) ^ uint16(len(bytes))
	hash ^= 0xCE4B
	return fmt.Sprintf("%04X", hash)
}

// rotl15 rotates the low 15 bits of v left by one position.
func rotl15(v uint16) uint16 {
	return ((v >> 14) & 0x01) | ((v << 1) & 0x7FFF)
}
