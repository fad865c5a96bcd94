package businessflow

import (
	"context"
	"testing"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveManualRecipients(t *testing.T) {
	resolver := NewRecipientResolver(newMemClientRepo(), newMemGroupRepo())

	recipients, err := resolver.Resolve(context.Background(), nil, []string{" a@example.com ", "", "b@example.com"}, FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, recipients)
}

func TestResolveManualRecipientsAllBlank(t *testing.T) {
	resolver := NewRecipientResolver(newMemClientRepo(), newMemGroupRepo())

	_, err := resolver.Resolve(context.Background(), nil, []string{"  ", ""}, FieldPhone)
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestResolveGroupWinsOverManualList(t *testing.T) {
	clients := newMemClientRepo()
	groups := newMemGroupRepo()
	group := groups.add(1, "Customers")
	clients.add(1, "Alice", "alice@example.com", "+15550001", group.ID)
	clients.add(1, "Bob", "bob@example.com", "", group.ID)

	resolver := NewRecipientResolver(clients, groups)

	recipients, err := resolver.Resolve(context.Background(), &group.ID, []string{"manual@example.com"}, FieldEmail)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, recipients)
	assert.NotContains(t, recipients, "manual@example.com")
}

func TestResolveGroupDropsContactsMissingField(t *testing.T) {
	clients := newMemClientRepo()
	groups := newMemGroupRepo()
	group := groups.add(1, "Customers")
	clients.add(1, "Alice", "alice@example.com", "+15550001", group.ID)
	clients.add(1, "Bob", "bob@example.com", "", group.ID)

	resolver := NewRecipientResolver(clients, groups)

	recipients, err := resolver.Resolve(context.Background(), &group.ID, nil, FieldPhone)
	require.NoError(t, err)
	assert.Equal(t, []string{"+15550001"}, recipients)
}

func TestResolveGroupWithNoUsableContacts(t *testing.T) {
	clients := newMemClientRepo()
	groups := newMemGroupRepo()
	group := groups.add(1, "Empty")
	clients.add(1, "Bob", "bob@example.com", "", group.ID)

	resolver := NewRecipientResolver(clients, groups)

	_, err := resolver.Resolve(context.Background(), &group.ID, nil, FieldPhone)
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestResolveUnknownGroup(t *testing.T) {
	resolver := NewRecipientResolver(newMemClientRepo(), newMemGroupRepo())

	_, err := resolver.Resolve(context.Background(), utils.ToPtr(uint(99)), nil, FieldEmail)
	assert.ErrorIs(t, err, ErrTargetGroupNotFound)
}

func TestResolveKeepsDuplicates(t *testing.T) {
	resolver := NewRecipientResolver(newMemClientRepo(), newMemGroupRepo())

	recipients, err := resolver.Resolve(context.Background(), nil, []string{"a@example.com", "a@example.com"}, FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "a@example.com"}, recipients)
}
