// Package vcard turns uploaded VCF payloads into normalized contact records
// and groups them for operator review. The VCF grammar itself is handled by
// the external decoder; this package only shapes its output.
package vcard

import "strings"

// Name is one structured-name entry of a contact. At most the first entry is
// used when provisioning a user.
type Name struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Contact is the normalized in-memory representation of one parsed vCard
// entry. Its identity is its position in the parsed batch; it is not stable
// across runs and is never persisted.
type Contact struct {
	Names      []Name              `json:"names"`
	Emails     []string            `json:"emails"`
	Phones     []string            `json:"phones"`
	Addresses  []map[string]string `json:"addresses"`
	Categories []string            `json:"categories"`
	Notes      []string            `json:"notes"`
	Photo      string              `json:"photo,omitempty"` // base64-encoded image payload
	Role       string              `json:"role"`
}

// FirstName returns the first name of the first structured-name entry.
func (c Contact) FirstName() string {
	if len(c.Names) == 0 {
		return ""
	}
	return c.Names[0].FirstName
}

// LastName returns the last name of the first structured-name entry.
func (c Contact) LastName() string {
	if len(c.Names) == 0 {
		return ""
	}
	return c.Names[0].LastName
}

// PrimaryEmail returns the first email, or "" when the contact has none.
// A contact without an email can be displayed but never reconciled.
func (c Contact) PrimaryEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// Note joins all note entries with newlines for display.
func (c Contact) Note() string {
	return strings.Join(c.Notes, "\n")
}

func appendUnique(values []string, v string) []string {
	if v == "" {
		return values
	}
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
