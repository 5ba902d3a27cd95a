package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sjperalta/billing-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_LogTruncatesUserAgent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.admin
	actor.UserAgent = strings.Repeat("é", 400)
	require.NoError(t, env.services.Audit.Log(ctx, actor, models.AuditActionLogin, "User", actor.UserID, ""))

	logs, total, err := env.services.Audit.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, models.UserAgentMaxLen, utf8.RuneCountInString(logs[0].UserAgent))
	assert.True(t, strings.HasPrefix(actor.UserAgent, logs[0].UserAgent))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "ñá", truncate("ñáé", 2))
}
