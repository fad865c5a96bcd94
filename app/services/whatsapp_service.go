package services

import (
	"fmt"
	"net/url"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
)

// WhatsAppLinkBuilder builds click-to-chat deep links for manual dispatch.
type WhatsAppLinkBuilder interface {
	BuildLink(phone, body string) (string, error)
}

// DeepLinkBuilder implements WhatsAppLinkBuilder using the wa.me URL scheme
type DeepLinkBuilder struct{}

// NewDeepLinkBuilder creates a new deep link builder
func NewDeepLinkBuilder() *DeepLinkBuilder {
	return &DeepLinkBuilder{}
}

// BuildLink returns a wa.me link that opens a chat with the given phone
// number and the message body pre-filled
func (b *DeepLinkBuilder) BuildLink(phone, body string) (string, error) {
	digits := utils.DigitsOnly(phone)
	if digits == "" {
		return "", fmt.Errorf("phone number %q contains no digits", phone)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(body)), nil
}
