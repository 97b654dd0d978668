package service

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmbedParams(t *testing.T) {
	ctx, err := ParseEmbedParams(" evt-1 ", "player", "u-1")
	require.NoError(t, err)
	assert.Equal(t, EmbedContext{EventID: "evt-1", UserType: "player", UserID: "u-1"}, ctx)

	_, err = ParseEmbedParams("", "coach", "")
	assert.ErrorIs(t, err, ErrMissingEventID)

	_, err = ParseEmbedParams("evt-1", "parent", "")
	assert.ErrorIs(t, err, ErrInvalidUserType)

	_, err = ParseEmbedParams("evt-1", "", "")
	assert.ErrorIs(t, err, ErrInvalidUserType)
}

func TestEmbedLink_RoundTrip(t *testing.T) {
	svc := NewEmbedService("s3cret", time.Hour, "https://club.example/")

	link, err := svc.CreateLink(EmbedContext{EventID: "evt-1", UserType: "coach", UserID: "u-9"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.URL, "https://club.example/embed?token="))

	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, link.Token, u.Query().Get("token"))

	ctx, err := svc.ParseToken(link.Token)
	require.NoError(t, err)
	assert.Equal(t, EmbedContext{EventID: "evt-1", UserType: "coach", UserID: "u-9"}, ctx)
}

func TestEmbedLink_RejectsTamperedAndExpired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewEmbedService("s3cret", time.Hour, "").(*embedService)
	svc.now = func() time.Time { return issued }

	link, err := svc.CreateLink(EmbedContext{EventID: "evt-1", UserType: "player"})
	require.NoError(t, err)

	other := NewEmbedService("different", time.Hour, "")
	_, err = other.ParseToken(link.Token)
	assert.ErrorIs(t, err, ErrInvalidEmbedLink)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ParseToken(link.Token)
	assert.ErrorIs(t, err, ErrInvalidEmbedLink)

	_, err = svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidEmbedLink)
}

func TestEmbedLink_Validation(t *testing.T) {
	_, err := NewEmbedService("s3cret", time.Hour, "").CreateLink(EmbedContext{EventID: "evt-1", UserType: "fan"})
	assert.ErrorIs(t, err, ErrInvalidUserType)

	_, err = NewEmbedService("", time.Hour, "").CreateLink(EmbedContext{EventID: "evt-1", UserType: "coach"})
	assert.Error(t, err)
}
