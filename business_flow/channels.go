package businessflow

import (
	"fmt"
	"strings"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
)

// ChannelKind selects the dispatch path for a channel
type ChannelKind int

const (
	// KindEmail dispatches one SMTP message per recipient
	KindEmail ChannelKind = iota
	// KindWhatsApp hands recipients to the manual dispatch queue
	KindWhatsApp
	// KindSocial is an acknowledgment only, no payload is built
	KindSocial
)

// Channel describes one selectable dispatch channel. Adding a channel means
// registering one more variant here.
type Channel struct {
	ID             string
	Kind           ChannelKind
	ValidateConfig func(cfg models.ChannelConfig) error
}

func validateEmailConfig(cfg models.ChannelConfig) error {
	if from := cfg["from_address"]; from != "" && !strings.Contains(from, "@") {
		return fmt.Errorf("invalid from address %q", from)
	}
	return nil
}

var channelRegistry = map[string]Channel{
	"email":     {ID: "email", Kind: KindEmail, ValidateConfig: validateEmailConfig},
	"whatsapp":  {ID: "whatsapp", Kind: KindWhatsApp},
	"facebook":  {ID: "facebook", Kind: KindSocial},
	"instagram": {ID: "instagram", Kind: KindSocial},
	"twitter":   {ID: "twitter", Kind: KindSocial},
	"linkedin":  {ID: "linkedin", Kind: KindSocial},
}

// LookupChannel resolves a channel id to its registered variant
func LookupChannel(id string) (Channel, error) {
	ch, ok := channelRegistry[id]
	if !ok {
		return Channel{}, fmt.Errorf("%w: %s", ErrUnknownChannel, id)
	}
	return ch, nil
}

// ValidateChannels checks every selected platform against the registry and
// its per-channel configuration
func ValidateChannels(platforms []string, configs map[string]models.ChannelConfig) error {
	for _, id := range platforms {
		ch, err := LookupChannel(id)
		if err != nil {
			return err
		}
		if ch.ValidateConfig != nil {
			if err := ch.ValidateConfig(configs[id]); err != nil {
				return fmt.Errorf("channel %s: %w", id, err)
			}
		}
	}
	return nil
}

// SelectedKind reports whether any selected platform dispatches through the
// given kind
func SelectedKind(platforms []string, kind ChannelKind) bool {
	for _, id := range platforms {
		if ch, ok := channelRegistry[id]; ok && ch.Kind == kind {
			return true
		}
	}
	return false
}
