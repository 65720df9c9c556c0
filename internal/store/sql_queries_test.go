// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/lumina/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pgBuilder   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	liteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildListMessagesQuery_PlaceholdersPerDialect(t *testing.T) {
	tests := []struct {
		name        string
		builder     sq.StatementBuilderType
		placeholder string
	}{
		{"postgres", pgBuilder, "$1"},
		{"sqlite", liteBuilder, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListMessagesQuery(tt.builder, "tok")
			require.NoError(t, err)

			require.Equal(t, []any{"tok"}, args)
			assert.Contains(t, query, "session_token = "+tt.placeholder)
			assert.True(t, strings.HasSuffix(query, "ORDER BY created_at ASC, id ASC"))
		})
	}
}

func Test_buildInsertMessageQuery(t *testing.T) {
	query, args, err := buildInsertMessageQuery(pgBuilder, models.Message{
		UserID: 5, SessionToken: "tok", Role: models.RoleAssistant, Content: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO messages (user_id,session_token,role,content) VALUES ($1,$2,$3,$4)", query)
	assert.Equal(t, []any{int64(5), "tok", "assistant", "hello"}, args)
}

func Test_buildCreateUserQuery_ReturnsGeneratedColumns(t *testing.T) {
	query, args, err := buildCreateUserQuery(liteBuilder, models.User{Name: "n", Email: "e", PasswordHash: "h"})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO users (name,email,password_hash) VALUES (?,?,?) RETURNING user_id, created_at", query)
	assert.Len(t, args, 3)
}

func Test_buildFindIdentityQuery_JoinsUsers(t *testing.T) {
	query, args, err := buildFindIdentityQuery(pgBuilder, "tok")
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from sessions s join users u on u.user_id = s.user_id")
	assert.Contains(t, q, "where s.token = $1")
	assert.Equal(t, []any{"tok"}, args)
}

func Test_buildClearMessagesQuery_ScopedToSession(t *testing.T) {
	query, args, err := buildClearMessagesQuery(pgBuilder, "tok")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM messages WHERE session_token = $1", query)
	assert.Equal(t, []any{"tok"}, args)
}
