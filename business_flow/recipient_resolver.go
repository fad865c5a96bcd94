package businessflow

import (
	"context"
	"strings"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
)

// RecipientField selects which contact field feeds a channel
type RecipientField int

const (
	// FieldPhone feeds the whatsapp channel
	FieldPhone RecipientField = iota
	// FieldEmail feeds the email channel
	FieldEmail
)

// RecipientResolver turns a target group or a manual destination list into
// the flat recipient slice a channel dispatches to.
type RecipientResolver struct {
	clientRepo repository.ClientRepository
	groupRepo  repository.TargetGroupRepository
}

// NewRecipientResolver creates a new recipient resolver
func NewRecipientResolver(clientRepo repository.ClientRepository, groupRepo repository.TargetGroupRepository) *RecipientResolver {
	return &RecipientResolver{
		clientRepo: clientRepo,
		groupRepo:  groupRepo,
	}
}

// Resolve returns the recipients for one channel. A set group id wins over
// the manual list; contacts with an empty value for the requested field are
// dropped. Duplicates are kept as stored. An empty result is a hard stop for
// the caller.
func (r *RecipientResolver) Resolve(ctx context.Context, groupID *uint, manual []string, field RecipientField) ([]string, error) {
	if groupID == nil {
		recipients := make([]string, 0, len(manual))
		for _, m := range manual {
			if v := strings.TrimSpace(m); v != "" {
				recipients = append(recipients, v)
			}
		}
		if len(recipients) == 0 {
			return nil, ErrNoRecipients
		}
		return recipients, nil
	}

	group, err := r.groupRepo.ByID(ctx, *groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrTargetGroupNotFound
	}

	clients, err := r.clientRepo.ListByGroup(ctx, *groupID)
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(clients))
	for _, c := range clients {
		var v string
		switch field {
		case FieldPhone:
			v = c.Phone
		case FieldEmail:
			v = c.Email
		}
		if strings.TrimSpace(v) != "" {
			recipients = append(recipients, v)
		}
	}

	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	return recipients, nil
}
