package errors

import "unicode"

// ValidateDesignID validates a design identifier before it reaches the
// store. IDs are generated as UUIDs, so anything outside hex digits and
// dashes (or of unreasonable length) is rejected up front; this also
// keeps path traversal out of file-backed stores.
func ValidateDesignID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "design id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidID, "design id too long (max 64 characters)")
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			if unicode.IsControl(r) {
				return New(ErrCodeInvalidID, "design id contains control characters")
			}
			return New(ErrCodeInvalidID, "design id contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePresetName validates a plate-size or material preset name.
// Names come from TOML files and URLs, so only short lowercase
// identifiers are allowed.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 32 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 32 characters)")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' && r != '-' {
			return New(ErrCodeInvalidPreset, "preset name contains invalid character %q", r)
		}
	}
	return nil
}
