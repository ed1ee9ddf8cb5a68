package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryHelpers(t *testing.T) {
	assert.True(t, IsValidEventCategory("wedding"))
	assert.False(t, IsValidEventCategory("Wedding"))
	assert.Equal(t, "Música", CategoryLabel("music"))
	assert.Equal(t, "unknown", CategoryLabel("unknown"))
	assert.Equal(t, "🎂", CategoryIcon("birthday"))
	assert.Equal(t, "📅", CategoryIcon("unknown"))
}

func TestIsValidImageType(t *testing.T) {
	assert.True(t, IsValidImageType("image/webp"))
	assert.False(t, IsValidImageType("image/svg+xml"))
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:                "0 Bytes",
		512:              "512 Bytes",
		1024:             "1 KB",
		1536:             "1.5 KB",
		10 * 1024 * 1024: "10 MB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatFileSize(in), "bytes=%d", in)
	}
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "gallery:session:client:auth_token", BuildClientSessionKey("", STORAGE_KEY_TOKEN))
	assert.Equal(t, "gallery:session:client:alice:auth_user", BuildClientSessionKey("alice", STORAGE_KEY_USER))
	assert.Equal(t, "gallery:ratelimit:10.0.0.1:auth", BuildRateLimitKey("10.0.0.1", "auth"))
	assert.Equal(t, "gallery:auth:revoked:sid", BuildRevokedSessionKey("sid"))
}

func TestMessagesEmbedLimits(t *testing.T) {
	assert.Equal(t, "La contraseña debe tener al menos 8 caracteres", MsgPasswordTooShort)
	assert.Equal(t, "La imagen no puede superar los 10 MB", MsgImageTooLarge)
}
