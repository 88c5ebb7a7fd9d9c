package vcard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	govcard "github.com/emersion/go-vcard"
)

// ErrParse marks a malformed upload. Nothing from the batch is imported when
// Parse fails.
var ErrParse = errors.New("malformed vCard payload")

// Parse decodes a raw VCF payload into contact records, one per card, in
// document order. Each contact's role is preset to defaultRole.
func Parse(data []byte, defaultRole string) ([]Contact, error) {
	dec := govcard.NewDecoder(bytes.NewReader(data))

	var contacts []Contact
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		contacts = append(contacts, fromCard(card, defaultRole))
	}

	return contacts, nil
}

func fromCard(card govcard.Card, defaultRole string) Contact {
	contact := Contact{Role: defaultRole}

	for _, name := range card.Names() {
		contact.Names = append(contact.Names, Name{
			FirstName: name.GivenName,
			LastName:  name.FamilyName,
		})
	}

	for _, email := range card.Values(govcard.FieldEmail) {
		contact.Emails = appendUnique(contact.Emails, strings.TrimSpace(email))
	}
	for _, phone := range card.Values(govcard.FieldTelephone) {
		contact.Phones = appendUnique(contact.Phones, strings.TrimSpace(phone))
	}

	for _, addr := range card.Addresses() {
		contact.Addresses = append(contact.Addresses, addressFields(addr))
	}

	// CATEGORIES values are comma-separated; a card may carry several lines.
	for _, line := range card.Values(govcard.FieldCategories) {
		for _, cat := range strings.Split(line, ",") {
			contact.Categories = appendUnique(contact.Categories, strings.TrimSpace(cat))
		}
	}

	for _, note := range card.Values(govcard.FieldNote) {
		if note = strings.TrimSpace(note); note != "" {
			contact.Notes = append(contact.Notes, note)
		}
	}

	if photo := card.Get(govcard.FieldPhoto); photo != nil {
		contact.Photo = normalizePhoto(photo.Value)
	}

	return contact
}

func addressFields(addr *govcard.Address) map[string]string {
	fields := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	set("po_box", addr.PostOfficeBox)
	set("extended", addr.ExtendedAddress)
	set("street", addr.StreetAddress)
	set("city", addr.Locality)
	set("region", addr.Region)
	set("postal_code", addr.PostalCode)
	set("country", addr.Country)
	return fields
}

// normalizePhoto reduces both vCard 3.0 inline base64 payloads and vCard 4.0
// data URIs to the bare base64 string.
func normalizePhoto(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "data:") {
		if idx := strings.Index(value, "base64,"); idx != -1 {
			value = value[idx+len("base64,"):]
		}
	}
	// Inline payloads may carry folded-line whitespace
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, value)
}
